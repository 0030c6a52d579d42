package analytics

import (
	"math"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/services/inventory"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/shopspring/decimal"
)

const (
	// FailureCoefficient is the expected number of part replacements per registered
	// vehicle over the six month baseline.
	FailureCoefficient = 0.05
	// HighDemandThreshold separates critical items from ordinary critical stocking needs.
	HighDemandThreshold = 10.0
	// CriticalCoverage is the inventory/demand share below which a part needs restocking.
	CriticalCoverage = 0.5
)

// ComputeMetrics aggregates the dashboard figures for one time frame and region scope.
// An empty scope or parts table produces zero metrics. Coverage only counts stock of
// parts with demand in scope.
func ComputeMetrics(
	snap *dataset.Snapshot,
	tf domain.TimeFrame,
	scope domain.RegionScope,
	source inventory.Source,
) domain.DashboardMetrics {
	registrations := RegistrationsByType(snap.RegionVehicleTypes, FilterRegions(snap.Regions, scope))
	prices := pricesByPart(snap.PartPrices)
	scale := tf.Scale()

	var (
		metrics        domain.DashboardMetrics
		inventoryUnits float64
		revenue        = decimal.Zero
		prevDemand     float64
		prevRevenue    = decimal.Zero
	)

	for _, part := range snap.Parts {
		demand := float64(registrations[part.TypeID]) * FailureCoefficient * scale
		retail := retailPrice(prices, part.ID)

		metrics.PredictedDemandUnits += demand
		revenue = revenue.Add(decimal.NewFromFloat(demand).Mul(retail))

		// Parts without demand in scope carry no stock into the coverage ratio.
		if demand > 0 {
			stock := float64(source.CurrentStock(part.ID, int(math.Round(demand))))
			inventoryUnits += stock

			if stock < CriticalCoverage*demand {
				metrics.CriticalStockingNeeds++
				if demand > HighDemandThreshold {
					metrics.CriticalItems++
				}
			}
		}

		previous := source.PreviousDemand(part.ID, demand)
		prevDemand += previous
		prevRevenue = prevRevenue.Add(decimal.NewFromFloat(previous).Mul(retail))
	}

	metrics.RevenueOpportunity = revenue.Round(2).InexactFloat64()
	if metrics.PredictedDemandUnits > 0 {
		metrics.PartsCoverageRatio = inventoryUnits / metrics.PredictedDemandUnits * 100
	}

	if len(snap.Parts) > 0 {
		prevRevenueValue := prevRevenue.Round(2).InexactFloat64()
		metrics.PreviousPredictedDemandUnits = &prevDemand
		metrics.PreviousRevenueOpportunity = &prevRevenueValue
	}

	return metrics
}

func pricesByPart(prices []store.PartPrice) map[int]store.PartPrice {
	byPart := make(map[int]store.PartPrice, len(prices))
	for _, p := range prices {
		byPart[p.PartID] = p
	}
	return byPart
}

func retailPrice(prices map[int]store.PartPrice, partID int) decimal.Decimal {
	if p, ok := prices[partID]; ok && p.RetailPrice > 0 {
		return decimal.NewFromFloat(p.RetailPrice)
	}
	return decimal.NewFromFloat(DefaultRetailPrice)
}
