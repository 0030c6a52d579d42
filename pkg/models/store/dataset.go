package store

import "time"

const (
	RegionTypeState  = "state"
	RegionTypeCounty = "county"
)

// Region is a state or a county. Counties reference their state through ParentID.
type Region struct {
	ID         int
	Name       string
	Type       string
	ParentID   *int
	Population int64
}

type VehicleType struct {
	ID    int
	Make  string
	Model string
	Year  int
}

type Vehicle struct {
	ID                  int
	TypeID              int
	RegionID            *int
	Mileage             float64
	MonthlyAccumulation float64 // miles per month, 0 when unknown
}

// RegionVehicleType is the number of vehicles of one type registered in a region.
type RegionVehicleType struct {
	RegionID          int
	TypeID            int
	RegistrationCount int64
	YearRecorded      int
}

type Part struct {
	ID          int
	Name        string
	Number      string
	TypeID      int
	ComponentID int
}

type Component struct {
	ID   int
	Name string
}

type Failure struct {
	ID               int
	VehicleID        int
	PartID           int
	MileageAtFailure float64
	Date             time.Time
}

type PartPrice struct {
	PartID         int
	RetailPrice    float64
	WholesalePrice float64
}

// DemandForecast is a pre-computed six month demand forecast for a single part.
type DemandForecast struct {
	PartID           int
	Name             string
	Number           string
	ExpectedDemand   int64
	CurrentStock     *int64
	RecommendedStock int64
	RetailPrice      float64
	WholesalePrice   float64
	DemandTrend      *float64
}

// Table names shared by every dataset source.
const (
	TableRegions            = "regions"
	TableVehicleTypes       = "vehicle_types"
	TableVehicles           = "vehicles"
	TableRegionVehicleTypes = "region_vehicle_types"
	TableParts              = "parts"
	TableComponents         = "components"
	TableFailures           = "failures"
	TablePartPrices         = "part_prices"
	TableDemandForecasts    = "demand_forecast"
)

var Tables = []string{
	TableRegions,
	TableVehicleTypes,
	TableVehicles,
	TableRegionVehicleTypes,
	TableParts,
	TableComponents,
	TableFailures,
	TablePartPrices,
	TableDemandForecasts,
}

// Columns lists the column order of every table. SQL stores, the DuckDB schema and CSV
// headers all follow it.
var Columns = map[string][]string{
	TableRegions:            {"region_id", "name", "type", "parent_region_id", "population"},
	TableVehicleTypes:       {"type_id", "make", "model", "year"},
	TableVehicles:           {"vehicle_id", "type_id", "region_id", "mileage", "estimated_monthly_accumulation"},
	TableRegionVehicleTypes: {"region_id", "type_id", "registration_count", "year_recorded"},
	TableParts:              {"part_id", "name", "part_number", "type_id", "component_id"},
	TableComponents:         {"component_id", "name"},
	TableFailures:           {"failure_id", "vehicle_id", "part_id", "mileage_at_failure", "failure_date"},
	TablePartPrices:         {"part_id", "retail_price", "wholesale_price"},
	TableDemandForecasts: {
		"part_id", "part_name", "part_number", "expected_demand", "current_stock",
		"recommended_stock", "retail_price", "wholesale_price", "demand_trend",
	},
}
