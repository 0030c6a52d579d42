package api

import "time"

type Region struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	ParentID   *int   `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Population int64  `json:"population" yaml:"population"`
}

type DashboardMetrics struct {
	PredictedDemandUnits         float64  `json:"predicted_demand_units" yaml:"predicted_demand_units"`
	RevenueOpportunity           float64  `json:"revenue_opportunity" yaml:"revenue_opportunity"`
	PartsCoverageRatio           float64  `json:"parts_coverage_ratio" yaml:"parts_coverage_ratio"`
	CriticalStockingNeeds        int      `json:"critical_stocking_needs" yaml:"critical_stocking_needs"`
	CriticalItems                int      `json:"critical_items" yaml:"critical_items"`
	PreviousPredictedDemandUnits *float64 `json:"previous_predicted_demand_units,omitempty" yaml:"previous_predicted_demand_units,omitempty"`
	PreviousRevenueOpportunity   *float64 `json:"previous_revenue_opportunity,omitempty" yaml:"previous_revenue_opportunity,omitempty"`
}

type Recommendation struct {
	PartID             int     `json:"part_id" yaml:"part_id"`
	PartNumber         string  `json:"part_number" yaml:"part_number"`
	PartName           string  `json:"part_name" yaml:"part_name"`
	CurrentStock       int     `json:"current_stock" yaml:"current_stock"`
	RecommendedStock   int     `json:"recommended_stock" yaml:"recommended_stock"`
	Status             string  `json:"status" yaml:"status"`
	EstimatedDemand    int     `json:"estimated_demand" yaml:"estimated_demand"`
	RevenueOpportunity float64 `json:"revenue_opportunity" yaml:"revenue_opportunity"`
	IsCritical         bool    `json:"is_critical" yaml:"is_critical"`
	StockingTrend      int     `json:"stocking_trend" yaml:"stocking_trend"`
	DemandTrend        int     `json:"demand_trend" yaml:"demand_trend"`
}

type RestockLine struct {
	PartNumber     string `json:"part_number" yaml:"part_number"`
	PartName       string `json:"part_name" yaml:"part_name"`
	Status         string `json:"status" yaml:"status"`
	CurrentStock   int    `json:"current_stock" yaml:"current_stock"`
	Demand         int    `json:"demand" yaml:"demand"`
	StockoutDays   *int   `json:"stockout_days,omitempty" yaml:"stockout_days,omitempty"`
	StockoutLabel  string `json:"stockout_label" yaml:"stockout_label"`
	RecommendedQty int    `json:"recommended_qty" yaml:"recommended_qty"`
}

type MarketInsight struct {
	Type        string `json:"type" yaml:"type"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Value       string `json:"value" yaml:"value"`
	Sentiment   string `json:"sentiment" yaml:"sentiment"`
}

type VehicleLocation struct {
	Make             string  `json:"make" yaml:"make"`
	Model            string  `json:"model" yaml:"model"`
	Year             int     `json:"year" yaml:"year"`
	EstimatedMileage float64 `json:"estimated_mileage" yaml:"estimated_mileage"`
	Registrations    int64   `json:"registrations" yaml:"registrations"`
	Trend            int     `json:"trend" yaml:"trend"`
}

type ForecastPart struct {
	PartID           int     `json:"part_id" yaml:"part_id"`
	PartNumber       string  `json:"part_number" yaml:"part_number"`
	PartName         string  `json:"part_name" yaml:"part_name"`
	ExpectedDemand   int64   `json:"expected_demand" yaml:"expected_demand"`
	CurrentStock     *int64  `json:"current_stock,omitempty" yaml:"current_stock,omitempty"`
	RecommendedStock int64   `json:"recommended_stock" yaml:"recommended_stock"`
	RetailPrice      float64 `json:"retail_price" yaml:"retail_price"`
	WholesalePrice   float64 `json:"wholesale_price" yaml:"wholesale_price"`
	DemandTrend      int     `json:"demand_trend" yaml:"demand_trend"`
}

type ForecastDemand struct {
	TimeFrame        string         `json:"time_frame" yaml:"time_frame"`
	Days             int            `json:"days" yaml:"days"`
	Parts            []ForecastPart `json:"parts" yaml:"parts"`
	TotalDemand      int64          `json:"total_demand" yaml:"total_demand"`
	TotalStock       int64          `json:"total_stock" yaml:"total_stock"`
	PotentialRevenue float64        `json:"potential_revenue" yaml:"potential_revenue"`
}

type FrameReport struct {
	TimeFrame       string            `json:"time_frame" yaml:"time_frame"`
	Label           string            `json:"label" yaml:"label"`
	Days            int               `json:"days" yaml:"days"`
	Metrics         DashboardMetrics  `json:"metrics" yaml:"metrics"`
	Recommendations []Recommendation  `json:"recommendations" yaml:"recommendations"`
	Restock         []RestockLine     `json:"restock" yaml:"restock"`
	Insights        []MarketInsight   `json:"insights" yaml:"insights"`
	Vehicles        []VehicleLocation `json:"vehicles" yaml:"vehicles"`
}

type Report struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Location    string        `json:"location" yaml:"location"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Frames      []FrameReport `json:"frames" yaml:"frames"`
}
