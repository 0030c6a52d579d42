package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/de-tools/parts-atlas/pkg/store/duckdb"
	duckdbdataset "github.com/de-tools/parts-atlas/pkg/store/duckdb/dataset"
	"github.com/rs/zerolog"
)

// Summary counts the rows written per table.
type Summary map[string]int

type Importer struct {
	db    *sql.DB
	store duckdbdataset.Store
}

func NewImporter(db *sql.DB, store duckdbdataset.Store) *Importer {
	return &Importer{db: db, store: store}
}

// Import replaces the embedded tables with everything the source serves. Either all
// tables are replaced or none are.
func (im *Importer) Import(ctx context.Context, source dataset.Loader) (Summary, error) {
	logger := zerolog.Ctx(ctx)

	snap, err := dataset.LoadSnapshot(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source tables: %w", err)
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate transaction: %w", err)
	}

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	if err := im.store.Replace(ctxWithTx, snap); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn().Err(rbErr).Msg("failed to roll back import")
		}
		return nil, fmt.Errorf("failed to store tables: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	summary := Summary{
		store.TableRegions:            len(snap.Regions),
		store.TableVehicleTypes:       len(snap.VehicleTypes),
		store.TableVehicles:           len(snap.Vehicles),
		store.TableRegionVehicleTypes: len(snap.RegionVehicleTypes),
		store.TableParts:              len(snap.Parts),
		store.TableComponents:         len(snap.Components),
		store.TableFailures:           len(snap.Failures),
		store.TablePartPrices:         len(snap.PartPrices),
		store.TableDemandForecasts:    len(snap.DemandForecasts),
	}
	for _, table := range store.Tables {
		logger.Info().Str("table", table).Int("rows", summary[table]).Msg("table imported")
	}
	return summary, nil
}
