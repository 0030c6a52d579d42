package dataset

import (
	"context"

	"github.com/de-tools/parts-atlas/pkg/models/store"
)

// Loader supplies one typed record collection per table. Implementations wrap read
// failures with domain.ErrDataUnavailable.
type Loader interface {
	LoadRegions(ctx context.Context) ([]store.Region, error)
	LoadVehicleTypes(ctx context.Context) ([]store.VehicleType, error)
	LoadVehicles(ctx context.Context) ([]store.Vehicle, error)
	LoadRegionVehicleTypes(ctx context.Context) ([]store.RegionVehicleType, error)
	LoadParts(ctx context.Context) ([]store.Part, error)
	LoadComponents(ctx context.Context) ([]store.Component, error)
	LoadFailures(ctx context.Context) ([]store.Failure, error)
	LoadPartPrices(ctx context.Context) ([]store.PartPrice, error)
	LoadDemandForecasts(ctx context.Context) ([]store.DemandForecast, error)
}
