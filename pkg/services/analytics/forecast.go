package analytics

import (
	"math"
	"sort"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/shopspring/decimal"
)

// ForecastTopParts caps the rows returned by ForecastDemand.
const ForecastTopParts = 20

// ForecastDemand scales the six month demand forecast to tf. Scaled demand is rounded
// half to even and never negative. Total stock is the sum of recommended stock, which
// does not depend on the time frame.
func ForecastDemand(forecasts []store.DemandForecast, tf domain.TimeFrame) domain.ForecastDemand {
	scale := tf.Scale()
	result := domain.ForecastDemand{
		TimeFrame: tf,
		Days:      tf.Days(),
		Parts:     make([]domain.ForecastPart, 0, len(forecasts)),
	}
	revenue := decimal.Zero

	for _, fc := range forecasts {
		demand := int64(max(math.RoundToEven(float64(fc.ExpectedDemand)*scale), 0))

		result.TotalDemand += demand
		result.TotalStock += fc.RecommendedStock
		revenue = revenue.Add(decimal.NewFromInt(demand).Mul(decimal.NewFromFloat(fc.RetailPrice)))

		part := domain.ForecastPart{
			PartID:           fc.PartID,
			PartNumber:       fc.Number,
			PartName:         fc.Name,
			Demand:           demand,
			CurrentStock:     fc.CurrentStock,
			RecommendedStock: fc.RecommendedStock,
			RetailPrice:      fc.RetailPrice,
			WholesalePrice:   fc.WholesalePrice,
		}
		if fc.DemandTrend != nil {
			part.Trend = domain.TrendOf(*fc.DemandTrend)
		}
		result.Parts = append(result.Parts, part)
	}

	sort.SliceStable(result.Parts, func(i, j int) bool {
		return result.Parts[i].Demand > result.Parts[j].Demand
	})
	if len(result.Parts) > ForecastTopParts {
		result.Parts = result.Parts[:ForecastTopParts]
	}
	result.PotentialRevenue = revenue.Round(2).InexactFloat64()

	return result
}
