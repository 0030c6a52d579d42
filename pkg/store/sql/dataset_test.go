package sql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T, schema string) (*datasetStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	loader, err := NewDatasetStore(db, schema)
	require.NoError(t, err)
	return loader.(*datasetStore), mock
}

func TestNewDatasetStore_NilDB(t *testing.T) {
	_, err := NewDatasetStore(nil, "")
	assert.EqualError(t, err, "database connection is nil")
}

func TestSelectQuery(t *testing.T) {
	assert.Equal(t,
		"SELECT component_id, name FROM components ORDER BY component_id",
		SelectQuery("", store.TableComponents))
	assert.Equal(t,
		"SELECT part_id, retail_price, wholesale_price FROM main.atlas.part_prices ORDER BY part_id",
		SelectQuery("main.atlas", store.TablePartPrices))
}

func TestDatasetStore_LoadRegions_ShouldMapNullableParent(t *testing.T) {
	// Given
	s, mock := newMockStore(t, "")
	rows := sqlmock.NewRows(store.Columns[store.TableRegions]).
		AddRow(1, "Texas", "state", nil, 29000000).
		AddRow(2, "Travis", "county", 1, 1300000)
	mock.ExpectQuery(regexp.QuoteMeta(SelectQuery("", store.TableRegions))).WillReturnRows(rows)

	// When
	regions, err := s.LoadRegions(context.Background())

	// Then
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Nil(t, regions[0].ParentID)
	require.NotNil(t, regions[1].ParentID)
	assert.Equal(t, 1, *regions[1].ParentID)
	assert.Equal(t, int64(1300000), regions[1].Population)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetStore_LoadFailures(t *testing.T) {
	s, mock := newMockStore(t, "")
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(store.Columns[store.TableFailures]).
		AddRow(1, 100, 10, 45000.5, date).
		AddRow(2, 101, 10, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(SelectQuery("", store.TableFailures))).WillReturnRows(rows)

	failures, err := s.LoadFailures(context.Background())

	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, date, failures[0].Date)
	assert.Equal(t, 45000.5, failures[0].MileageAtFailure)
	assert.True(t, failures[1].Date.IsZero())
}

func TestDatasetStore_LoadDemandForecasts_NullStock(t *testing.T) {
	s, mock := newMockStore(t, "")
	rows := sqlmock.NewRows(store.Columns[store.TableDemandForecasts]).
		AddRow(10, "Brake Pads", "P0010", 120, nil, 140, 99.5, 79.0, 0.3).
		AddRow(11, "Rotor", "P0011", 80, 60, 90, 150.0, 120.0, nil)
	mock.ExpectQuery(regexp.QuoteMeta(SelectQuery("", store.TableDemandForecasts))).WillReturnRows(rows)

	forecasts, err := s.LoadDemandForecasts(context.Background())

	require.NoError(t, err)
	require.Len(t, forecasts, 2)
	assert.Nil(t, forecasts[0].CurrentStock)
	require.NotNil(t, forecasts[0].DemandTrend)
	assert.Equal(t, 0.3, *forecasts[0].DemandTrend)
	assert.Nil(t, forecasts[1].DemandTrend)
	require.NotNil(t, forecasts[1].CurrentStock)
	assert.Equal(t, int64(60), *forecasts[1].CurrentStock)
}

func TestDatasetStore_QueryError_IsDataUnavailable(t *testing.T) {
	s, mock := newMockStore(t, "analytics")
	mock.ExpectQuery(regexp.QuoteMeta(SelectQuery("analytics", store.TableParts))).
		WillReturnError(errors.New("warehouse suspended"))

	_, err := s.LoadParts(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
	assert.Contains(t, err.Error(), "parts")
	assert.Contains(t, err.Error(), "warehouse suspended")
}

func TestDatasetStore_ScanError_IsDataUnavailable(t *testing.T) {
	s, mock := newMockStore(t, "")
	rows := sqlmock.NewRows(store.Columns[store.TableVehicleTypes]).
		AddRow("not-a-number", "Toyota", "Camry", 2018)
	mock.ExpectQuery(regexp.QuoteMeta(SelectQuery("", store.TableVehicleTypes))).WillReturnRows(rows)

	_, err := s.LoadVehicleTypes(context.Background())

	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestDatasetStore_EmptyTable(t *testing.T) {
	s, mock := newMockStore(t, "")
	mock.ExpectQuery(regexp.QuoteMeta(SelectQuery("", store.TableComponents))).
		WillReturnRows(sqlmock.NewRows(store.Columns[store.TableComponents]))

	components, err := s.LoadComponents(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, components)
	assert.Empty(t, components)
}
