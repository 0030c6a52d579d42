package analytics

import (
	"math"
	"sort"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/inventory"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/shopspring/decimal"
)

const (
	// MinFailureRate is the floor applied to the observed per-vehicle failure rate.
	MinFailureRate = 0.01
	// DefaultRetailPrice and DefaultWholesalePrice stand in for parts without a price row.
	DefaultRetailPrice    = 100.0
	DefaultWholesalePrice = 80.0
)

// GenerateRecommendations ranks every part with positive predicted demand in the scope
// by stocking criticality.
func GenerateRecommendations(
	snap *dataset.Snapshot,
	tf domain.TimeFrame,
	scope domain.RegionScope,
	source inventory.Source,
) []domain.PartStockRecommendation {
	registrations := RegistrationsByType(snap.RegionVehicleTypes, FilterRegions(snap.Regions, scope))
	prices := pricesByPart(snap.PartPrices)
	failures := failuresByPart(snap)
	scale := tf.Scale()

	recs := make([]domain.PartStockRecommendation, 0, len(snap.Parts))
	for _, part := range snap.Parts {
		vehicleCount := registrations[part.TypeID]
		if vehicleCount <= 0 {
			continue
		}

		rate := max(float64(failures[part.ID])/float64(vehicleCount), MinFailureRate)
		demand := int(math.Round(float64(vehicleCount) * rate * scale))
		if demand <= 0 {
			continue
		}

		retail, wholesale := DefaultRetailPrice, DefaultWholesalePrice
		if p, ok := prices[part.ID]; ok {
			retail, wholesale = p.RetailPrice, p.WholesalePrice
		}

		stock := source.CurrentStock(part.ID, demand)
		shortfall := max(demand-stock, 0)
		revenue := decimal.NewFromInt(int64(shortfall)).
			Mul(decimal.NewFromFloat(retail).Sub(decimal.NewFromFloat(wholesale))).
			Round(2)

		status := ClassifyStock(stock, demand)
		recs = append(recs, domain.PartStockRecommendation{
			PartID:             part.ID,
			PartNumber:         part.Number,
			PartName:           part.Name,
			ComponentID:        part.ComponentID,
			VehicleTypeID:      part.TypeID,
			CurrentStock:       stock,
			RecommendedStock:   safetyStock(demand),
			Status:             status,
			EstimatedDemand:    demand,
			RevenueOpportunity: revenue.InexactFloat64(),
			IsCritical:         status == domain.StockCritical,
			StockingTrend:      domain.TrendOf(float64(demand - stock)),
			DemandTrend:        source.DemandTrend(part.ID),
			RetailPrice:        retail,
			WholesalePrice:     wholesale,
		})
	}

	SortByCriticality(recs)
	return recs
}

// safetyStock is ceil(demand * 1.2) computed in integers.
func safetyStock(demand int) int {
	return (demand*12 + 9) / 10
}

// ClassifyStock bands stock against demand: below 60% is critical, below 90% low, below
// 120% adequate and anything above is overstock. A boundary value lands in the higher
// band. Parts without demand are overstocked by definition.
func ClassifyStock(stock, demand int) domain.StockStatus {
	if demand <= 0 {
		return domain.StockOverstock
	}
	s, d := int64(stock)*10, int64(demand)
	switch {
	case s < 6*d:
		return domain.StockCritical
	case s < 9*d:
		return domain.StockLow
	case s < 12*d:
		return domain.StockAdequate
	default:
		return domain.StockOverstock
	}
}

// SortByCriticality orders recommendations in place: critical first, then by ascending
// stock/demand ratio, then by descending revenue opportunity. Ties keep their order.
func SortByCriticality(recs []domain.PartStockRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.IsCritical != b.IsCritical {
			return a.IsCritical
		}
		if ra, rb := stockRatio(a), stockRatio(b); ra != rb {
			return ra < rb
		}
		return a.RevenueOpportunity > b.RevenueOpportunity
	})
}

func stockRatio(r domain.PartStockRecommendation) float64 {
	if r.EstimatedDemand <= 0 {
		return math.Inf(1)
	}
	return float64(r.CurrentStock) / float64(r.EstimatedDemand)
}

func failuresByPart(snap *dataset.Snapshot) map[int]int {
	counts := make(map[int]int)
	for _, f := range snap.Failures {
		counts[f.PartID]++
	}
	return counts
}
