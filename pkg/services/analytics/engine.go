package analytics

import (
	"context"

	"github.com/de-tools/parts-atlas/pkg/adapters"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/inventory"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

// Engine runs the analytics over the tables served by a dataset loader.
type Engine struct {
	loader        dataset.Loader
	inventory     inventory.Source
	forecastStock bool
}

type Option func(*Engine)

// WithForecastStock reads stock levels and demand trends from the demand forecast table,
// falling back to the engine's inventory source for parts it does not cover.
func WithForecastStock() Option {
	return func(e *Engine) {
		e.forecastStock = true
	}
}

func NewEngine(loader dataset.Loader, source inventory.Source, opts ...Option) *Engine {
	e := &Engine{loader: loader, inventory: source}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLoader returns a copy of the engine reading from another loader.
func (e *Engine) WithLoader(loader dataset.Loader) *Engine {
	clone := *e
	clone.loader = loader
	return &clone
}

func (e *Engine) snapshot(ctx context.Context) (*dataset.Snapshot, inventory.Source, error) {
	snap, err := dataset.LoadSnapshot(ctx, e.loader)
	if err != nil {
		return nil, nil, err
	}
	return snap, e.source(snap), nil
}

func (e *Engine) source(snap *dataset.Snapshot) inventory.Source {
	if e.forecastStock {
		return inventory.NewForecast(snap.DemandForecasts, e.inventory)
	}
	return e.inventory
}

func (e *Engine) Regions(ctx context.Context, scope domain.RegionScope) ([]domain.RegionSummary, error) {
	regions, err := e.loader.LoadRegions(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterRegions(regions, scope)
	summaries := make([]domain.RegionSummary, 0, len(filtered))
	for _, r := range filtered {
		summaries = append(summaries, adapters.MapStoreRegionToDomain(r))
	}
	return summaries, nil
}

func (e *Engine) Metrics(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) (domain.DashboardMetrics, error) {
	snap, source, err := e.snapshot(ctx)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}
	return ComputeMetrics(snap, tf, scope, source), nil
}

func (e *Engine) Recommendations(
	ctx context.Context,
	tf domain.TimeFrame,
	scope domain.RegionScope,
) ([]domain.PartStockRecommendation, error) {
	snap, source, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return GenerateRecommendations(snap, tf, scope, source), nil
}

func (e *Engine) Insights(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) ([]domain.MarketInsight, error) {
	snap, source, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	recs := GenerateRecommendations(snap, tf, scope, source)
	return GenerateInsights(recs, NewMarginBaseline(snap)), nil
}

func (e *Engine) Vehicles(
	ctx context.Context,
	tf domain.TimeFrame,
	scope domain.RegionScope,
) ([]domain.VehicleLocationData, error) {
	snap, source, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return VehicleBreakdown(snap, tf, scope, source), nil
}

// Demand serves the forecast table scaled to tf. Forecasts are not regional, so there
// is no scope.
func (e *Engine) Demand(ctx context.Context, tf domain.TimeFrame) (domain.ForecastDemand, error) {
	forecasts, err := e.loader.LoadDemandForecasts(ctx)
	if err != nil {
		return domain.ForecastDemand{}, err
	}
	demand := ForecastDemand(forecasts, tf)

	zerolog.Ctx(ctx).Debug().
		Str("time_frame", string(tf)).
		Int("forecasts", len(forecasts)).
		Int64("total_demand", demand.TotalDemand).
		Msg("forecast demand computed")

	return demand, nil
}

// Frame computes the full bundle for one time frame from a single snapshot.
func (e *Engine) Frame(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) (domain.FrameReport, error) {
	snap, source, err := e.snapshot(ctx)
	if err != nil {
		return domain.FrameReport{}, err
	}

	recs := GenerateRecommendations(snap, tf, scope, source)
	frame := domain.FrameReport{
		TimeFrame:       tf,
		Days:            tf.Days(),
		Metrics:         ComputeMetrics(snap, tf, scope, source),
		Recommendations: recs,
		Restock:         RestockLines(recs, tf),
		Insights:        GenerateInsights(recs, NewMarginBaseline(snap)),
		Vehicles:        VehicleBreakdown(snap, tf, scope, source),
	}

	zerolog.Ctx(ctx).Debug().
		Str("time_frame", string(tf)).
		Int("recommendations", len(recs)).
		Int("critical", frame.Metrics.CriticalStockingNeeds).
		Msg("time frame computed")

	return frame, nil
}

// RestockLines projects stockout days and reorder quantities for ranked recommendations.
func RestockLines(recs []domain.PartStockRecommendation, tf domain.TimeFrame) []domain.RestockLine {
	lines := make([]domain.RestockLine, 0, len(recs))
	for _, r := range recs {
		stock, demand := float64(r.CurrentStock), float64(r.EstimatedDemand)
		days := DaysUntilStockout(stock, demand, tf)
		lines = append(lines, domain.RestockLine{
			PartNumber:     r.PartNumber,
			PartName:       r.PartName,
			Status:         r.Status,
			CurrentStock:   r.CurrentStock,
			Demand:         r.EstimatedDemand,
			StockoutDays:   days,
			StockoutLabel:  StockoutLabel(days),
			RecommendedQty: RecommendedOrderQty(stock, demand, SafetyStockDays),
		})
	}
	return lines
}
