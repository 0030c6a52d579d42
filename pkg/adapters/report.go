package adapters

import (
	"github.com/de-tools/parts-atlas/pkg/models/api"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
)

func MapMetricsDomainToApi(m domain.DashboardMetrics) api.DashboardMetrics {
	return api.DashboardMetrics{
		PredictedDemandUnits:         m.PredictedDemandUnits,
		RevenueOpportunity:           m.RevenueOpportunity,
		PartsCoverageRatio:           m.PartsCoverageRatio,
		CriticalStockingNeeds:        m.CriticalStockingNeeds,
		CriticalItems:                m.CriticalItems,
		PreviousPredictedDemandUnits: m.PreviousPredictedDemandUnits,
		PreviousRevenueOpportunity:   m.PreviousRevenueOpportunity,
	}
}

func MapRecommendationDomainToApi(r domain.PartStockRecommendation) api.Recommendation {
	return api.Recommendation{
		PartID:             r.PartID,
		PartNumber:         r.PartNumber,
		PartName:           r.PartName,
		CurrentStock:       r.CurrentStock,
		RecommendedStock:   r.RecommendedStock,
		Status:             string(r.Status),
		EstimatedDemand:    r.EstimatedDemand,
		RevenueOpportunity: r.RevenueOpportunity,
		IsCritical:         r.IsCritical,
		StockingTrend:      int(r.StockingTrend),
		DemandTrend:        int(r.DemandTrend),
	}
}

// MapRestockLineDomainToApi drops the stockout day count when there is no stockout risk.
func MapRestockLineDomainToApi(l domain.RestockLine) api.RestockLine {
	res := api.RestockLine{
		PartNumber:     l.PartNumber,
		PartName:       l.PartName,
		Status:         string(l.Status),
		CurrentStock:   l.CurrentStock,
		Demand:         l.Demand,
		StockoutLabel:  l.StockoutLabel,
		RecommendedQty: l.RecommendedQty,
	}
	if l.HasStockoutRisk() {
		days := int(l.StockoutDays)
		res.StockoutDays = &days
	}
	return res
}

func MapInsightDomainToApi(i domain.MarketInsight) api.MarketInsight {
	return api.MarketInsight{
		Type:        string(i.Type),
		Title:       i.Title,
		Description: i.Description,
		Value:       i.Value,
		Sentiment:   string(i.Sentiment),
	}
}

func MapVehicleDomainToApi(v domain.VehicleLocationData) api.VehicleLocation {
	return api.VehicleLocation{
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		EstimatedMileage: v.EstimatedMileage,
		Registrations:    v.Registrations,
		Trend:            int(v.Trend),
	}
}

func MapFrameDomainToApi(f domain.FrameReport) api.FrameReport {
	res := api.FrameReport{
		TimeFrame:       string(f.TimeFrame),
		Label:           f.TimeFrame.Label(),
		Days:            f.Days,
		Metrics:         MapMetricsDomainToApi(f.Metrics),
		Recommendations: make([]api.Recommendation, 0, len(f.Recommendations)),
		Restock:         make([]api.RestockLine, 0, len(f.Restock)),
		Insights:        make([]api.MarketInsight, 0, len(f.Insights)),
		Vehicles:        make([]api.VehicleLocation, 0, len(f.Vehicles)),
	}
	for _, r := range f.Recommendations {
		res.Recommendations = append(res.Recommendations, MapRecommendationDomainToApi(r))
	}
	for _, l := range f.Restock {
		res.Restock = append(res.Restock, MapRestockLineDomainToApi(l))
	}
	for _, i := range f.Insights {
		res.Insights = append(res.Insights, MapInsightDomainToApi(i))
	}
	for _, v := range f.Vehicles {
		res.Vehicles = append(res.Vehicles, MapVehicleDomainToApi(v))
	}
	return res
}

func MapReportDomainToApi(r domain.Report) api.Report {
	res := api.Report{
		ID:          r.ID,
		Title:       r.Title,
		Location:    r.Location,
		GeneratedAt: r.GeneratedAt,
		Frames:      make([]api.FrameReport, 0, len(r.Frames)),
	}
	for _, f := range r.Frames {
		res.Frames = append(res.Frames, MapFrameDomainToApi(f))
	}
	return res
}

func MapForecastDemandDomainToApi(d domain.ForecastDemand) api.ForecastDemand {
	parts := make([]api.ForecastPart, 0, len(d.Parts))
	for _, p := range d.Parts {
		parts = append(parts, api.ForecastPart{
			PartID:           p.PartID,
			PartNumber:       p.PartNumber,
			PartName:         p.PartName,
			ExpectedDemand:   p.Demand,
			CurrentStock:     p.CurrentStock,
			RecommendedStock: p.RecommendedStock,
			RetailPrice:      p.RetailPrice,
			WholesalePrice:   p.WholesalePrice,
			DemandTrend:      int(p.Trend),
		})
	}
	return api.ForecastDemand{
		TimeFrame:        string(d.TimeFrame),
		Days:             d.Days,
		Parts:            parts,
		TotalDemand:      d.TotalDemand,
		TotalStock:       d.TotalStock,
		PotentialRevenue: d.PotentialRevenue,
	}
}
