package config

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/analytics"
	"github.com/de-tools/parts-atlas/pkg/services/inventory"
	"github.com/de-tools/parts-atlas/pkg/store/csv"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/de-tools/parts-atlas/pkg/store/duckdb"
	duckdbdataset "github.com/de-tools/parts-atlas/pkg/store/duckdb/dataset"
	"github.com/de-tools/parts-atlas/pkg/store/s3"
	"github.com/de-tools/parts-atlas/pkg/store/warehouse"
	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenLoader builds the dataset loader for the configured source. The returned closer
// releases any database connection and must be closed by the caller.
func OpenLoader(ctx context.Context, src Source) (dataset.Loader, io.Closer, error) {
	loader, closer, err := openPrimary(ctx, src)
	if err != nil {
		return nil, nil, err
	}

	if src.FallbackDir != "" {
		zerolog.Ctx(ctx).Debug().
			Str("source", src.Kind).
			Str("fallback_dir", src.FallbackDir).
			Msg("using fallback dataset location")
		loader = dataset.NewFallback(loader, csv.NewDirLoader(src.FallbackDir))
	}
	return loader, closer, nil
}

func openPrimary(ctx context.Context, src Source) (dataset.Loader, io.Closer, error) {
	switch src.Kind {
	case SourceDuckDB, "":
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: src.DbPath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		store, err := duckdbdataset.NewStore(db)
		if err != nil {
			return nil, nil, closeOnError(db, fmt.Errorf("failed to create dataset store: %w", err))
		}
		return store, db, nil

	case SourceCSV:
		if src.Dir == "" {
			return nil, nil, fmt.Errorf("csv source requires a directory")
		}
		return csv.NewDirLoader(src.Dir), nopCloser{}, nil

	case SourceS3:
		loader, err := s3.NewLoader(ctx, src.Bucket, src.Prefix, src.Profile, src.Region)
		if err != nil {
			return nil, nil, err
		}
		return loader, nopCloser{}, nil

	case SourceSnowflake:
		loader, db, err := warehouse.NewSnowflakeLoader(src.Snowflake)
		if err != nil {
			return nil, nil, err
		}
		return loader, db, nil

	case SourceDatabricks:
		cfg, err := src.Databricks.Resolve()
		if err != nil {
			return nil, nil, err
		}
		loader, db, err := warehouse.NewDatabricksLoader(cfg)
		if err != nil {
			return nil, nil, err
		}
		return loader, db, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, src.Kind)
	}
}

func closeOnError(db *sql.DB, err error) error {
	_ = db.Close()
	return err
}

// NewInventory returns the seeded inventory source.
func NewInventory(cfg Inventory) inventory.Source {
	return inventory.NewSimulated(cfg.Seed)
}

// NewEngine binds the loader to the configured inventory settings.
func NewEngine(loader dataset.Loader, cfg Inventory) *analytics.Engine {
	var opts []analytics.Option
	if cfg.Mode == InventoryForecast {
		opts = append(opts, analytics.WithForecastStock())
	}
	return analytics.NewEngine(loader, NewInventory(cfg), opts...)
}
