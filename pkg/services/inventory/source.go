package inventory

import (
	"math"
	"math/rand/v2"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
)

// Source supplies the inputs that are not part of the dataset tables: what is on the
// shelf now, what the previous period looked like and which way things are moving.
// Implementations must be safe for concurrent use.
type Source interface {
	CurrentStock(partID int, predictedDemand int) int
	PreviousDemand(partID int, demand float64) float64
	DemandTrend(partID int) domain.Trend
	VehicleTrend(typeID int) domain.Trend
}

const (
	MinSimulatedStock = 10
	minStockRatio     = 0.5
	maxStockRatio     = 1.2
	minPreviousRatio  = 0.8
	maxPreviousRatio  = 1.2
)

const (
	streamStock uint64 = iota + 1
	streamPrevious
	streamDemandTrend
	streamVehicleTrend
)

// Simulated derives every value from a seeded generator keyed by the requested entity,
// so results do not depend on call order and repeat across runs with the same seed.
type Simulated struct {
	seed uint64
}

func NewSimulated(seed uint64) *Simulated {
	return &Simulated{seed: seed}
}

func (s *Simulated) rand(stream uint64, id int) *rand.Rand {
	return rand.New(rand.NewPCG(s.seed^stream<<56, uint64(id)))
}

// CurrentStock is between 50% and 120% of predicted demand, never below 10 units.
func (s *Simulated) CurrentStock(partID int, predictedDemand int) int {
	ratio := minStockRatio + s.rand(streamStock, partID).Float64()*(maxStockRatio-minStockRatio)
	stock := int(math.Floor(float64(predictedDemand) * ratio))
	return max(stock, MinSimulatedStock)
}

func (s *Simulated) PreviousDemand(partID int, demand float64) float64 {
	ratio := minPreviousRatio + s.rand(streamPrevious, partID).Float64()*(maxPreviousRatio-minPreviousRatio)
	return demand * ratio
}

func (s *Simulated) DemandTrend(partID int) domain.Trend {
	return domain.Trend(s.rand(streamDemandTrend, partID).IntN(3) - 1)
}

func (s *Simulated) VehicleTrend(typeID int) domain.Trend {
	return domain.Trend(s.rand(streamVehicleTrend, typeID).IntN(3) - 1)
}

// Forecast reads stock levels and demand trends from the pre-computed demand forecast
// and defers to the wrapped source for anything the forecast does not carry.
type Forecast struct {
	byPart   map[int]store.DemandForecast
	fallback Source
}

func NewForecast(forecasts []store.DemandForecast, fallback Source) *Forecast {
	byPart := make(map[int]store.DemandForecast, len(forecasts))
	for _, f := range forecasts {
		byPart[f.PartID] = f
	}
	return &Forecast{byPart: byPart, fallback: fallback}
}

func (f *Forecast) CurrentStock(partID int, predictedDemand int) int {
	if fc, ok := f.byPart[partID]; ok && fc.CurrentStock != nil {
		return int(max(*fc.CurrentStock, 0))
	}
	return f.fallback.CurrentStock(partID, predictedDemand)
}

func (f *Forecast) PreviousDemand(partID int, demand float64) float64 {
	return f.fallback.PreviousDemand(partID, demand)
}

func (f *Forecast) DemandTrend(partID int) domain.Trend {
	if fc, ok := f.byPart[partID]; ok && fc.DemandTrend != nil {
		return domain.TrendOf(*fc.DemandTrend)
	}
	return f.fallback.DemandTrend(partID)
}

func (f *Forecast) VehicleTrend(typeID int) domain.Trend {
	return f.fallback.VehicleTrend(typeID)
}

// Static serves pinned values. Unknown parts have no stock, a previous demand equal to
// the current one and flat trends.
type Static struct {
	Stock         map[int]int
	PreviousRatio float64
	DemandTrends  map[int]domain.Trend
	VehicleTrends map[int]domain.Trend
}

func (s *Static) CurrentStock(partID int, _ int) int {
	return s.Stock[partID]
}

func (s *Static) PreviousDemand(_ int, demand float64) float64 {
	if s.PreviousRatio == 0 {
		return demand
	}
	return demand * s.PreviousRatio
}

func (s *Static) DemandTrend(partID int) domain.Trend {
	return s.DemandTrends[partID]
}

func (s *Static) VehicleTrend(typeID int) domain.Trend {
	return s.VehicleTrends[typeID]
}
