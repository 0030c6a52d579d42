package domain

import (
	"math"
	"time"
)

// Report is the renderer-agnostic payload assembled for a region scope.
type Report struct {
	ID          string
	Title       string
	Location    string
	Scope       RegionScope
	GeneratedAt time.Time
	Frames      []FrameReport
}

// FrameReport bundles everything computed for a single time frame.
type FrameReport struct {
	TimeFrame       TimeFrame
	Days            int
	Metrics         DashboardMetrics
	Recommendations []PartStockRecommendation
	Restock         []RestockLine
	Insights        []MarketInsight
	Vehicles        []VehicleLocationData
}

// RestockLine carries the per-part stockout projection shown next to a recommendation.
type RestockLine struct {
	PartNumber     string
	PartName       string
	Status         StockStatus
	CurrentStock   int
	Demand         int
	StockoutDays   float64 // +Inf when there is no stockout risk
	StockoutLabel  string
	RecommendedQty int
}

func (l RestockLine) HasStockoutRisk() bool {
	return !math.IsInf(l.StockoutDays, 1)
}

// Artifact is the opaque output of a renderer.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}
