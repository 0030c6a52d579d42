package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

type datasetStore struct {
	db     *sql.DB
	schema string // optional qualifier, e.g. "main.parts_atlas"
}

// NewDatasetStore returns a Loader reading the dataset tables through any database/sql
// driver speaking `?` placeholders (DuckDB, Snowflake, Databricks SQL).
func NewDatasetStore(db *sql.DB, schema string) (dataset.Loader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &datasetStore{db: db, schema: schema}, nil
}

// SelectQuery builds the SELECT statement used for a table.
func SelectQuery(schema, table string) string {
	name := table
	if schema != "" {
		name = schema + "." + table
	}
	cols := store.Columns[table]
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(cols, ", "), name, cols[0])
}

func queryTable[T any](
	ctx context.Context,
	s *datasetStore,
	table string,
	scan func(*sql.Rows) (T, error),
) ([]T, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, SelectQuery(s.schema, table))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, table, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Str("table", table).Msg("failed to close dataset rows")
		}
	}(rows)

	records := make([]T, 0)
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: scan: %w", domain.ErrDataUnavailable, table, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, table, err)
	}

	logger.Debug().Str("table", table).Int("rows", len(records)).Msg("table loaded")
	return records, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func (s *datasetStore) LoadRegions(ctx context.Context) ([]store.Region, error) {
	return queryTable(ctx, s, store.TableRegions, func(rows *sql.Rows) (store.Region, error) {
		var (
			r          store.Region
			parent     sql.NullInt64
			population sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &parent, &population); err != nil {
			return r, err
		}
		r.ParentID = intPtr(parent)
		r.Population = population.Int64
		return r, nil
	})
}

func (s *datasetStore) LoadVehicleTypes(ctx context.Context) ([]store.VehicleType, error) {
	return queryTable(ctx, s, store.TableVehicleTypes, func(rows *sql.Rows) (store.VehicleType, error) {
		var vt store.VehicleType
		err := rows.Scan(&vt.ID, &vt.Make, &vt.Model, &vt.Year)
		return vt, err
	})
}

func (s *datasetStore) LoadVehicles(ctx context.Context) ([]store.Vehicle, error) {
	return queryTable(ctx, s, store.TableVehicles, func(rows *sql.Rows) (store.Vehicle, error) {
		var (
			v            store.Vehicle
			region       sql.NullInt64
			mileage      sql.NullFloat64
			accumulation sql.NullFloat64
		)
		if err := rows.Scan(&v.ID, &v.TypeID, &region, &mileage, &accumulation); err != nil {
			return v, err
		}
		v.RegionID = intPtr(region)
		v.Mileage = mileage.Float64
		v.MonthlyAccumulation = accumulation.Float64
		return v, nil
	})
}

func (s *datasetStore) LoadRegionVehicleTypes(ctx context.Context) ([]store.RegionVehicleType, error) {
	return queryTable(ctx, s, store.TableRegionVehicleTypes, func(rows *sql.Rows) (store.RegionVehicleType, error) {
		var rvt store.RegionVehicleType
		err := rows.Scan(&rvt.RegionID, &rvt.TypeID, &rvt.RegistrationCount, &rvt.YearRecorded)
		return rvt, err
	})
}

func (s *datasetStore) LoadParts(ctx context.Context) ([]store.Part, error) {
	return queryTable(ctx, s, store.TableParts, func(rows *sql.Rows) (store.Part, error) {
		var p store.Part
		err := rows.Scan(&p.ID, &p.Name, &p.Number, &p.TypeID, &p.ComponentID)
		return p, err
	})
}

func (s *datasetStore) LoadComponents(ctx context.Context) ([]store.Component, error) {
	return queryTable(ctx, s, store.TableComponents, func(rows *sql.Rows) (store.Component, error) {
		var c store.Component
		err := rows.Scan(&c.ID, &c.Name)
		return c, err
	})
}

func (s *datasetStore) LoadFailures(ctx context.Context) ([]store.Failure, error) {
	return queryTable(ctx, s, store.TableFailures, func(rows *sql.Rows) (store.Failure, error) {
		var (
			f       store.Failure
			mileage sql.NullFloat64
			date    sql.NullTime
		)
		if err := rows.Scan(&f.ID, &f.VehicleID, &f.PartID, &mileage, &date); err != nil {
			return f, err
		}
		f.MileageAtFailure = mileage.Float64
		if date.Valid {
			f.Date = date.Time.UTC()
		}
		return f, nil
	})
}

func (s *datasetStore) LoadPartPrices(ctx context.Context) ([]store.PartPrice, error) {
	return queryTable(ctx, s, store.TablePartPrices, func(rows *sql.Rows) (store.PartPrice, error) {
		var p store.PartPrice
		err := rows.Scan(&p.PartID, &p.RetailPrice, &p.WholesalePrice)
		return p, err
	})
}

func (s *datasetStore) LoadDemandForecasts(ctx context.Context) ([]store.DemandForecast, error) {
	return queryTable(ctx, s, store.TableDemandForecasts, func(rows *sql.Rows) (store.DemandForecast, error) {
		var (
			f     store.DemandForecast
			stock sql.NullInt64
			trend sql.NullFloat64
		)
		err := rows.Scan(&f.PartID, &f.Name, &f.Number, &f.ExpectedDemand, &stock,
			&f.RecommendedStock, &f.RetailPrice, &f.WholesalePrice, &trend)
		if err != nil {
			return f, err
		}
		if stock.Valid {
			v := stock.Int64
			f.CurrentStock = &v
		}
		if trend.Valid {
			v := trend.Float64
			f.DemandTrend = &v
		}
		return f, nil
	})
}
