package dataset

import (
	"context"

	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Snapshot is an immutable view of every table taken for one computation.
type Snapshot struct {
	Regions            []store.Region
	VehicleTypes       []store.VehicleType
	Vehicles           []store.Vehicle
	RegionVehicleTypes []store.RegionVehicleType
	Parts              []store.Part
	Components         []store.Component
	Failures           []store.Failure
	PartPrices         []store.PartPrice
	DemandForecasts    []store.DemandForecast
}

// LoadSnapshot fetches all tables concurrently and returns once every load finished.
// The first failing table aborts the whole snapshot.
func LoadSnapshot(ctx context.Context, loader Loader) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { snap.Regions, err = loader.LoadRegions(gctx); return })
	g.Go(func() (err error) { snap.VehicleTypes, err = loader.LoadVehicleTypes(gctx); return })
	g.Go(func() (err error) { snap.Vehicles, err = loader.LoadVehicles(gctx); return })
	g.Go(func() (err error) { snap.RegionVehicleTypes, err = loader.LoadRegionVehicleTypes(gctx); return })
	g.Go(func() (err error) { snap.Parts, err = loader.LoadParts(gctx); return })
	g.Go(func() (err error) { snap.Components, err = loader.LoadComponents(gctx); return })
	g.Go(func() (err error) { snap.Failures, err = loader.LoadFailures(gctx); return })
	g.Go(func() (err error) { snap.PartPrices, err = loader.LoadPartPrices(gctx); return })
	g.Go(func() (err error) { snap.DemandForecasts, err = loader.LoadDemandForecasts(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("regions", len(snap.Regions)).
		Int("parts", len(snap.Parts)).
		Int("registrations", len(snap.RegionVehicleTypes)).
		Int("failures", len(snap.Failures)).
		Msg("dataset snapshot loaded")

	return &snap, nil
}

// Region looks up a region by id.
func (s *Snapshot) Region(id int) (store.Region, bool) {
	for _, r := range s.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return store.Region{}, false
}

// A Snapshot is itself a Loader serving its in-memory tables.

func (s *Snapshot) LoadRegions(context.Context) ([]store.Region, error) { return s.Regions, nil }

func (s *Snapshot) LoadVehicleTypes(context.Context) ([]store.VehicleType, error) {
	return s.VehicleTypes, nil
}

func (s *Snapshot) LoadVehicles(context.Context) ([]store.Vehicle, error) { return s.Vehicles, nil }

func (s *Snapshot) LoadRegionVehicleTypes(context.Context) ([]store.RegionVehicleType, error) {
	return s.RegionVehicleTypes, nil
}

func (s *Snapshot) LoadParts(context.Context) ([]store.Part, error) { return s.Parts, nil }

func (s *Snapshot) LoadComponents(context.Context) ([]store.Component, error) {
	return s.Components, nil
}

func (s *Snapshot) LoadFailures(context.Context) ([]store.Failure, error) { return s.Failures, nil }

func (s *Snapshot) LoadPartPrices(context.Context) ([]store.PartPrice, error) {
	return s.PartPrices, nil
}

func (s *Snapshot) LoadDemandForecasts(context.Context) ([]store.DemandForecast, error) {
	return s.DemandForecasts, nil
}
