package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

// Opener resolves a table file name (e.g. "parts.csv") to its contents.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirOpener reads table files from a local directory.
type DirOpener string

func (d DirOpener) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), name))
}

// Loader reads each table from "<table>.csv", with a header row naming the columns.
type Loader struct {
	opener Opener
}

func NewLoader(opener Opener) dataset.Loader {
	return &Loader{opener: opener}
}

// NewDirLoader reads the tables from a local directory.
func NewDirLoader(dir string) dataset.Loader {
	return NewLoader(DirOpener(dir))
}

// row gives typed access to one CSV record by column name.
type row struct {
	index  map[string]int
	record []string
	err    error
}

func (r *row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r *row) optInt64(col string) *int64 {
	v := r.str(col)
	if v == "" || r.err != nil {
		return nil
	}
	// Exported data frames write integer columns with NaN gaps as floats ("3.0").
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: invalid integer %q", col, v)
		return nil
	}
	i := int64(f)
	return &i
}

func (r *row) int64Val(col string) int64 {
	if v := r.optInt64(col); v != nil {
		return *v
	}
	return 0
}

func (r *row) intVal(col string) int {
	return int(r.int64Val(col))
}

func (r *row) optInt(col string) *int {
	v := r.optInt64(col)
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func (r *row) optFloat(col string) *float64 {
	v := r.str(col)
	if v == "" || r.err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: invalid number %q", col, v)
		return nil
	}
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func (r *row) floatVal(col string) float64 {
	if v := r.optFloat(col); v != nil {
		return *v
	}
	return 0
}

func (r *row) timeVal(col string) time.Time {
	v := r.str(col)
	if v == "" || r.err != nil {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	r.err = fmt.Errorf("column %s: invalid date %q", col, v)
	return time.Time{}
}

func readTable[T any](ctx context.Context, l *Loader, table string, parse func(*row) T) ([]T, error) {
	name := table + ".csv"
	file, err := l.opener.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to open %s: %w", domain.ErrDataUnavailable, table, name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read CSV: %w", domain.ErrDataUnavailable, table, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: CSV has no header", domain.ErrDataUnavailable, table)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range store.Columns[table] {
		if _, ok := index[col]; !ok && !optionalColumns[table][col] {
			return nil, fmt.Errorf("%w: %s: missing column %q", domain.ErrDataUnavailable, table, col)
		}
	}

	out := make([]T, 0, len(records)-1)
	for i, record := range records[1:] {
		r := &row{index: index, record: record}
		value := parse(r)
		if r.err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", domain.ErrDataUnavailable, table, i+2, r.err)
		}
		out = append(out, value)
	}

	zerolog.Ctx(ctx).Debug().Str("table", table).Int("rows", len(out)).Msg("table loaded")
	return out, nil
}

// optionalColumns may be absent from a CSV header; they load as zero/null.
var optionalColumns = map[string]map[string]bool{
	store.TableRegions:         {"parent_region_id": true, "population": true},
	store.TableVehicles:        {"region_id": true, "mileage": true, "estimated_monthly_accumulation": true},
	store.TableFailures:        {"mileage_at_failure": true, "failure_date": true},
	store.TableDemandForecasts: {"current_stock": true, "demand_trend": true},
}

func (l *Loader) LoadRegions(ctx context.Context) ([]store.Region, error) {
	return readTable(ctx, l, store.TableRegions, func(r *row) store.Region {
		return store.Region{
			ID:         r.intVal("region_id"),
			Name:       r.str("name"),
			Type:       r.str("type"),
			ParentID:   r.optInt("parent_region_id"),
			Population: r.int64Val("population"),
		}
	})
}

func (l *Loader) LoadVehicleTypes(ctx context.Context) ([]store.VehicleType, error) {
	return readTable(ctx, l, store.TableVehicleTypes, func(r *row) store.VehicleType {
		return store.VehicleType{
			ID:    r.intVal("type_id"),
			Make:  r.str("make"),
			Model: r.str("model"),
			Year:  r.intVal("year"),
		}
	})
}

func (l *Loader) LoadVehicles(ctx context.Context) ([]store.Vehicle, error) {
	return readTable(ctx, l, store.TableVehicles, func(r *row) store.Vehicle {
		return store.Vehicle{
			ID:                  r.intVal("vehicle_id"),
			TypeID:              r.intVal("type_id"),
			RegionID:            r.optInt("region_id"),
			Mileage:             r.floatVal("mileage"),
			MonthlyAccumulation: r.floatVal("estimated_monthly_accumulation"),
		}
	})
}

func (l *Loader) LoadRegionVehicleTypes(ctx context.Context) ([]store.RegionVehicleType, error) {
	return readTable(ctx, l, store.TableRegionVehicleTypes, func(r *row) store.RegionVehicleType {
		return store.RegionVehicleType{
			RegionID:          r.intVal("region_id"),
			TypeID:            r.intVal("type_id"),
			RegistrationCount: r.int64Val("registration_count"),
			YearRecorded:      r.intVal("year_recorded"),
		}
	})
}

func (l *Loader) LoadParts(ctx context.Context) ([]store.Part, error) {
	return readTable(ctx, l, store.TableParts, func(r *row) store.Part {
		return store.Part{
			ID:          r.intVal("part_id"),
			Name:        r.str("name"),
			Number:      r.str("part_number"),
			TypeID:      r.intVal("type_id"),
			ComponentID: r.intVal("component_id"),
		}
	})
}

func (l *Loader) LoadComponents(ctx context.Context) ([]store.Component, error) {
	return readTable(ctx, l, store.TableComponents, func(r *row) store.Component {
		return store.Component{ID: r.intVal("component_id"), Name: r.str("name")}
	})
}

func (l *Loader) LoadFailures(ctx context.Context) ([]store.Failure, error) {
	return readTable(ctx, l, store.TableFailures, func(r *row) store.Failure {
		return store.Failure{
			ID:               r.intVal("failure_id"),
			VehicleID:        r.intVal("vehicle_id"),
			PartID:           r.intVal("part_id"),
			MileageAtFailure: r.floatVal("mileage_at_failure"),
			Date:             r.timeVal("failure_date"),
		}
	})
}

func (l *Loader) LoadPartPrices(ctx context.Context) ([]store.PartPrice, error) {
	return readTable(ctx, l, store.TablePartPrices, func(r *row) store.PartPrice {
		return store.PartPrice{
			PartID:         r.intVal("part_id"),
			RetailPrice:    r.floatVal("retail_price"),
			WholesalePrice: r.floatVal("wholesale_price"),
		}
	})
}

func (l *Loader) LoadDemandForecasts(ctx context.Context) ([]store.DemandForecast, error) {
	return readTable(ctx, l, store.TableDemandForecasts, func(r *row) store.DemandForecast {
		return store.DemandForecast{
			PartID:           r.intVal("part_id"),
			Name:             r.str("part_name"),
			Number:           r.str("part_number"),
			ExpectedDemand:   r.int64Val("expected_demand"),
			CurrentStock:     r.optInt64("current_stock"),
			RecommendedStock: r.int64Val("recommended_stock"),
			RetailPrice:      r.floatVal("retail_price"),
			WholesalePrice:   r.floatVal("wholesale_price"),
			DemandTrend:      r.optFloat("demand_trend"),
		}
	})
}
