package dataset

import (
	"context"
	"sync"

	"github.com/de-tools/parts-atlas/pkg/models/store"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

// Cache memoizes every table of the wrapped Loader. It is meant to live for a single
// report generation: create one per request and drop it afterwards. Failures are
// memoized too, so concurrent pipelines of the same request agree on the outcome.
type Cache struct {
	loader Loader

	mu      sync.Mutex
	entries map[string]*entry
}

func NewCache(loader Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]*entry),
	}
}

func (c *Cache) entry(table string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[table]
	if !ok {
		e = &entry{}
		c.entries[table] = e
	}
	return e
}

func load[T any](ctx context.Context, c *Cache, table string, fn func(context.Context) ([]T, error)) ([]T, error) {
	e := c.entry(table)
	e.once.Do(func() {
		e.value, e.err = fn(ctx)
	})
	if e.err != nil {
		return nil, e.err
	}
	records, _ := e.value.([]T)
	return records, nil
}

func (c *Cache) LoadRegions(ctx context.Context) ([]store.Region, error) {
	return load(ctx, c, store.TableRegions, c.loader.LoadRegions)
}

func (c *Cache) LoadVehicleTypes(ctx context.Context) ([]store.VehicleType, error) {
	return load(ctx, c, store.TableVehicleTypes, c.loader.LoadVehicleTypes)
}

func (c *Cache) LoadVehicles(ctx context.Context) ([]store.Vehicle, error) {
	return load(ctx, c, store.TableVehicles, c.loader.LoadVehicles)
}

func (c *Cache) LoadRegionVehicleTypes(ctx context.Context) ([]store.RegionVehicleType, error) {
	return load(ctx, c, store.TableRegionVehicleTypes, c.loader.LoadRegionVehicleTypes)
}

func (c *Cache) LoadParts(ctx context.Context) ([]store.Part, error) {
	return load(ctx, c, store.TableParts, c.loader.LoadParts)
}

func (c *Cache) LoadComponents(ctx context.Context) ([]store.Component, error) {
	return load(ctx, c, store.TableComponents, c.loader.LoadComponents)
}

func (c *Cache) LoadFailures(ctx context.Context) ([]store.Failure, error) {
	return load(ctx, c, store.TableFailures, c.loader.LoadFailures)
}

func (c *Cache) LoadPartPrices(ctx context.Context) ([]store.PartPrice, error) {
	return load(ctx, c, store.TablePartPrices, c.loader.LoadPartPrices)
}

func (c *Cache) LoadDemandForecasts(ctx context.Context) ([]store.DemandForecast, error) {
	return load(ctx, c, store.TableDemandForecasts, c.loader.LoadDemandForecasts)
}
