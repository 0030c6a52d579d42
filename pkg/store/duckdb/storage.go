package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const RegionsSchema = `
	CREATE TABLE IF NOT EXISTS regions (
		region_id INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL,
		type VARCHAR NOT NULL,
		parent_region_id INTEGER NULL,
		population BIGINT
	);
`
const VehicleTypesSchema = `
	CREATE TABLE IF NOT EXISTS vehicle_types (
		type_id INTEGER PRIMARY KEY,
		make VARCHAR NOT NULL,
		model VARCHAR NOT NULL,
		year INTEGER NOT NULL
	);
`
const VehiclesSchema = `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		type_id INTEGER NOT NULL,
		region_id INTEGER NULL,
		mileage DOUBLE,
		estimated_monthly_accumulation DOUBLE
	);
`
const RegionVehicleTypesSchema = `
	CREATE TABLE IF NOT EXISTS region_vehicle_types (
		region_id INTEGER NOT NULL,
		type_id INTEGER NOT NULL,
		registration_count BIGINT NOT NULL CHECK (registration_count >= 0),
		year_recorded INTEGER NOT NULL,
		PRIMARY KEY (region_id, type_id, year_recorded)
	);
`
const PartsSchema = `
	CREATE TABLE IF NOT EXISTS parts (
		part_id INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL,
		part_number VARCHAR NOT NULL,
		type_id INTEGER NOT NULL,
		component_id INTEGER NOT NULL
	);
`
const ComponentsSchema = `
	CREATE TABLE IF NOT EXISTS components (
		component_id INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL
	);
`
const FailuresSchema = `
	CREATE TABLE IF NOT EXISTS failures (
		failure_id INTEGER PRIMARY KEY,
		vehicle_id INTEGER NOT NULL,
		part_id INTEGER NOT NULL,
		mileage_at_failure DOUBLE,
		failure_date TIMESTAMP NULL
	);
`
const PartPricesSchema = `
	CREATE TABLE IF NOT EXISTS part_prices (
		part_id INTEGER PRIMARY KEY,
		retail_price DOUBLE NOT NULL,
		wholesale_price DOUBLE NOT NULL
	);
`
const DemandForecastSchema = `
	CREATE TABLE IF NOT EXISTS demand_forecast (
		part_id INTEGER PRIMARY KEY,
		part_name VARCHAR,
		part_number VARCHAR,
		expected_demand BIGINT,
		current_stock BIGINT NULL,
		recommended_stock BIGINT,
		retail_price DOUBLE,
		wholesale_price DOUBLE,
		demand_trend DOUBLE
	);
`

var bootQueries = []string{
	RegionsSchema,
	VehicleTypesSchema,
	VehiclesSchema,
	RegionVehicleTypesSchema,
	PartsSchema,
	ComponentsSchema,
	FailuresSchema,
	PartPricesSchema,
	DemandForecastSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
