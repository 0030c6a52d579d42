package dataset

import (
	"context"
	"errors"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Fallback reads every table from the primary loader and retries against the secondary
// one when the primary reports the table as unavailable.
type Fallback struct {
	primary   Loader
	secondary Loader
}

func NewFallback(primary, secondary Loader) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

func fallback[T any](
	ctx context.Context,
	table string,
	primary, secondary func(context.Context) ([]T, error),
) ([]T, error) {
	records, err := primary(ctx)
	if err == nil {
		return records, nil
	}
	if !errors.Is(err, domain.ErrDataUnavailable) {
		return nil, err
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("table", table).
		Msg("primary source unavailable, trying secondary")

	return secondary(ctx)
}

func (f *Fallback) LoadRegions(ctx context.Context) ([]store.Region, error) {
	return fallback(ctx, store.TableRegions, f.primary.LoadRegions, f.secondary.LoadRegions)
}

func (f *Fallback) LoadVehicleTypes(ctx context.Context) ([]store.VehicleType, error) {
	return fallback(ctx, store.TableVehicleTypes, f.primary.LoadVehicleTypes, f.secondary.LoadVehicleTypes)
}

func (f *Fallback) LoadVehicles(ctx context.Context) ([]store.Vehicle, error) {
	return fallback(ctx, store.TableVehicles, f.primary.LoadVehicles, f.secondary.LoadVehicles)
}

func (f *Fallback) LoadRegionVehicleTypes(ctx context.Context) ([]store.RegionVehicleType, error) {
	return fallback(ctx, store.TableRegionVehicleTypes,
		f.primary.LoadRegionVehicleTypes, f.secondary.LoadRegionVehicleTypes)
}

func (f *Fallback) LoadParts(ctx context.Context) ([]store.Part, error) {
	return fallback(ctx, store.TableParts, f.primary.LoadParts, f.secondary.LoadParts)
}

func (f *Fallback) LoadComponents(ctx context.Context) ([]store.Component, error) {
	return fallback(ctx, store.TableComponents, f.primary.LoadComponents, f.secondary.LoadComponents)
}

func (f *Fallback) LoadFailures(ctx context.Context) ([]store.Failure, error) {
	return fallback(ctx, store.TableFailures, f.primary.LoadFailures, f.secondary.LoadFailures)
}

func (f *Fallback) LoadPartPrices(ctx context.Context) ([]store.PartPrice, error) {
	return fallback(ctx, store.TablePartPrices, f.primary.LoadPartPrices, f.secondary.LoadPartPrices)
}

func (f *Fallback) LoadDemandForecasts(ctx context.Context) ([]store.DemandForecast, error) {
	return fallback(ctx, store.TableDemandForecasts,
		f.primary.LoadDemandForecasts, f.secondary.LoadDemandForecasts)
}
