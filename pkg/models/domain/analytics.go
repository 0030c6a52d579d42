package domain

// RegionScope selects the regions a computation covers. A county selection wins over a
// state selection; an empty scope covers every region.
type RegionScope struct {
	StateID  *int
	CountyID *int
}

func (s RegionScope) IsAll() bool {
	return s.StateID == nil && s.CountyID == nil
}

type StockStatus string

const (
	StockCritical  StockStatus = "Critical"
	StockLow       StockStatus = "Low"
	StockAdequate  StockStatus = "Adequate"
	StockOverstock StockStatus = "Overstock"
)

// Trend is a direction indicator: -1 falling, 0 flat, 1 rising.
type Trend int

const (
	TrendDown Trend = -1
	TrendFlat Trend = 0
	TrendUp   Trend = 1
)

func TrendOf(v float64) Trend {
	switch {
	case v > 0:
		return TrendUp
	case v < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

type PartStockRecommendation struct {
	PartID             int
	PartNumber         string
	PartName           string
	ComponentID        int
	VehicleTypeID      int
	CurrentStock       int
	RecommendedStock   int
	Status             StockStatus
	EstimatedDemand    int
	RevenueOpportunity float64
	IsCritical         bool
	StockingTrend      Trend
	DemandTrend        Trend
	RetailPrice        float64
	WholesalePrice     float64
}

type DashboardMetrics struct {
	PredictedDemandUnits  float64
	RevenueOpportunity    float64
	PartsCoverageRatio    float64
	CriticalStockingNeeds int
	CriticalItems         int

	PreviousPredictedDemandUnits *float64
	PreviousRevenueOpportunity   *float64
}

type InsightType string

const (
	InsightProfit InsightType = "profit"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type MarketInsight struct {
	Type        InsightType
	Title       string
	Description string
	Value       string
	Sentiment   Sentiment
}

type VehicleLocationData struct {
	TypeID           int
	Make             string
	Model            string
	Year             int
	EstimatedMileage float64
	Registrations    int64
	Trend            Trend
}

type RegionSummary struct {
	ID         int
	Name       string
	Type       string
	ParentID   *int
	Population int64
}

// ForecastPart is one row of the forecast demand view.
type ForecastPart struct {
	PartID           int
	PartNumber       string
	PartName         string
	Demand           int64
	CurrentStock     *int64
	RecommendedStock int64
	RetailPrice      float64
	WholesalePrice   float64
	Trend            Trend
}

// ForecastDemand is the demand forecast table scaled to a time frame. Parts holds the
// highest-demand rows; the totals cover every forecast row.
type ForecastDemand struct {
	TimeFrame        TimeFrame
	Days             int
	Parts            []ForecastPart
	TotalDemand      int64
	TotalStock       int64
	PotentialRevenue float64
}
