package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/de-tools/parts-atlas/pkg/store/duckdb"
	sqlstore "github.com/de-tools/parts-atlas/pkg/store/sql"
)

// Store reads the dataset tables from DuckDB and supports replacing their contents.
// Replace joins the transaction carried in ctx, if any (see duckdb.WithTransaction).
type Store interface {
	dataset.Loader
	Replace(ctx context.Context, snap *dataset.Snapshot) error
}

type duckdbStore struct {
	dataset.Loader
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	loader, err := sqlstore.NewDatasetStore(db, "")
	if err != nil {
		return nil, err
	}
	return &duckdbStore{Loader: loader, db: db}, nil
}

func insertQuery(table string) string {
	cols := store.Columns[table]
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders)
}

func insertAll[T any](ctx context.Context, conn duckdb.Execer, table string, records []T, args func(T) []any) error {
	if _, err := conn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if len(records) == 0 {
		return nil
	}

	stmt, err := conn.PrepareContext(ctx, insertQuery(table))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, args(record)...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat64(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func (s *duckdbStore) Replace(ctx context.Context, snap *dataset.Snapshot) error {
	conn := duckdb.Conn(ctx, s.db)

	if err := insertAll(ctx, conn, store.TableRegions, snap.Regions, func(r store.Region) []any {
		return []any{r.ID, r.Name, r.Type, nullableInt(r.ParentID), r.Population}
	}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TableVehicleTypes, snap.VehicleTypes, func(vt store.VehicleType) []any {
		return []any{vt.ID, vt.Make, vt.Model, vt.Year}
	}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TableVehicles, snap.Vehicles, func(v store.Vehicle) []any {
		return []any{v.ID, v.TypeID, nullableInt(v.RegionID), v.Mileage, v.MonthlyAccumulation}
	}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TableRegionVehicleTypes, snap.RegionVehicleTypes,
		func(rvt store.RegionVehicleType) []any {
			return []any{rvt.RegionID, rvt.TypeID, rvt.RegistrationCount, rvt.YearRecorded}
		}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TableParts, snap.Parts, func(p store.Part) []any {
		return []any{p.ID, p.Name, p.Number, p.TypeID, p.ComponentID}
	}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TableComponents, snap.Components, func(c store.Component) []any {
		return []any{c.ID, c.Name}
	}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TableFailures, snap.Failures, func(f store.Failure) []any {
		var date any
		if !f.Date.IsZero() {
			date = f.Date
		}
		return []any{f.ID, f.VehicleID, f.PartID, f.MileageAtFailure, date}
	}); err != nil {
		return err
	}
	if err := insertAll(ctx, conn, store.TablePartPrices, snap.PartPrices, func(p store.PartPrice) []any {
		return []any{p.PartID, p.RetailPrice, p.WholesalePrice}
	}); err != nil {
		return err
	}
	return insertAll(ctx, conn, store.TableDemandForecasts, snap.DemandForecasts, func(f store.DemandForecast) []any {
		return []any{f.PartID, f.Name, f.Number, f.ExpectedDemand, nullableInt64(f.CurrentStock),
			f.RecommendedStock, f.RetailPrice, f.WholesalePrice, nullableFloat64(f.DemandTrend)}
	})
}
