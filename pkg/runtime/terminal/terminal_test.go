package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/parts-atlas/pkg/models/api"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/parts-atlas/pkg/services/config"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/de-tools/parts-atlas/pkg/store/duckdb"
	duckdbdataset "github.com/de-tools/parts-atlas/pkg/store/duckdb/dataset"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() *dataset.Snapshot {
	texas := 1
	snap := &dataset.Snapshot{
		Regions: []store.Region{
			{ID: 1, Name: "Texas", Type: store.RegionTypeState, Population: 29000000},
			{ID: 2, Name: "Travis", Type: store.RegionTypeCounty, ParentID: &texas, Population: 1300000},
			{ID: 3, Name: "Ohio", Type: store.RegionTypeState, Population: 11800000},
		},
		VehicleTypes:       []store.VehicleType{{ID: 1, Make: "Toyota", Model: "Camry", Year: 2018}},
		RegionVehicleTypes: []store.RegionVehicleType{{RegionID: 2, TypeID: 1, RegistrationCount: 1000, YearRecorded: 2023}},
		Parts:              []store.Part{{ID: 1, Name: "Brake Pads", Number: "P-1", TypeID: 1, ComponentID: 1}},
		Components:         []store.Component{{ID: 1, Name: "Braking System"}},
		PartPrices:         []store.PartPrice{{PartID: 1, RetailPrice: 50, WholesalePrice: 30}},
	}
	for i := range 100 {
		snap.Failures = append(snap.Failures, store.Failure{ID: i + 1, VehicleID: i + 1, PartID: 1})
	}
	return snap
}

func testConfig() *config.Config {
	return &config.Config{
		Source:    config.Source{Kind: config.SourceCSV, Dir: "unused"},
		Inventory: config.Inventory{Mode: config.InventorySimulated, Seed: 7},
		Report:    config.Report{Format: "text", OutputDir: "."},
	}
}

func run(t *testing.T, cfg *config.Config, loader dataset.Loader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{
		Output: &out,
		Logger: zerolog.New(zerolog.NewTestWriter(t)),
		Open: func(context.Context) (*commands.Session, error) {
			return commands.NewSession(cfg, loader, nil), nil
		},
	})
	cli.SetArgs(args)
	err := cli.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Regions(t *testing.T) {
	t.Run("all regions", func(t *testing.T) {
		out, err := run(t, testConfig(), snapshot(), "regions")

		require.NoError(t, err)
		assert.Contains(t, out, "Texas")
		assert.Contains(t, out, "Travis")
		assert.Contains(t, out, "Ohio")
	})

	t.Run("county scope", func(t *testing.T) {
		out, err := run(t, testConfig(), snapshot(), "regions", "--county", "2")

		require.NoError(t, err)
		assert.Contains(t, out, "Travis")
		assert.NotContains(t, out, "Ohio")
	})

	t.Run("unknown region", func(t *testing.T) {
		out, err := run(t, testConfig(), snapshot(), "regions", "--state", "99")

		require.NoError(t, err)
		assert.Equal(t, "No regions matched.\n", out)
	})
}

func TestCLI_Metrics(t *testing.T) {
	// Given 1000 registrations at a 5% failure coefficient
	out, err := run(t, testConfig(), snapshot(), "metrics", "--state", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Predicted demand:      50.0 units")

	// When the horizon is shorter
	out, err = run(t, testConfig(), snapshot(), "metrics", "--time-frame", "3months")

	// Then demand scales with it
	require.NoError(t, err)
	assert.Contains(t, out, "Predicted demand:      25.0 units")
}

func TestCLI_Metrics_InvalidTimeFrame(t *testing.T) {
	_, err := run(t, testConfig(), snapshot(), "metrics", "--time-frame", "2weeks")

	assert.EqualError(t, err, `unknown time frame "2weeks"`)
}

func TestCLI_Demand(t *testing.T) {
	// Given a six month forecast of 120 and 60 units
	snap := snapshot()
	snap.DemandForecasts = []store.DemandForecast{
		{PartID: 1, Name: "Brake Pads", Number: "P-1", ExpectedDemand: 120, RecommendedStock: 144, RetailPrice: 50},
		{PartID: 2, Name: "Rotor", Number: "P-2", ExpectedDemand: 60, RecommendedStock: 70, RetailPrice: 80},
	}

	// When
	out, err := run(t, testConfig(), snap, "demand", "--time-frame", "1month")

	// Then
	require.NoError(t, err)
	assert.Contains(t, out, "Brake Pads")
	assert.Contains(t, out, "Total demand:          30 units over 30 days")
	assert.Contains(t, out, "Total stock:           214 units")
	assert.Contains(t, out, "Potential revenue:     $1800.00")
}

func TestCLI_Demand_EmptyForecast(t *testing.T) {
	out, err := run(t, testConfig(), snapshot(), "demand")

	require.NoError(t, err)
	assert.Contains(t, out, "No demand forecast.\n")
	assert.Contains(t, out, "Total demand:          0 units over 180 days")
}

func TestCLI_Recommend(t *testing.T) {
	out, err := run(t, testConfig(), snapshot(), "recommend", "--state", "1", "--limit", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "P-1")
	assert.Contains(t, out, "Brake Pads")

	out, err = run(t, testConfig(), snapshot(), "recommend", "--state", "3")

	require.NoError(t, err)
	assert.Equal(t, "No stocking recommendations.\n", out)
}

type failingLoader struct {
	*dataset.Snapshot
}

func (failingLoader) LoadParts(context.Context) ([]store.Part, error) {
	return nil, domain.ErrDataUnavailable
}

func TestCLI_Recommend_DataUnavailable(t *testing.T) {
	_, err := run(t, testConfig(), failingLoader{Snapshot: snapshot()}, "recommend")

	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestCLI_Report(t *testing.T) {
	t.Run("json to stdout", func(t *testing.T) {
		out, err := run(t, testConfig(), snapshot(), "report", "--state", "1", "--format", "json", "--stdout")
		require.NoError(t, err)

		var report api.Report
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "Texas", report.Location)
		require.Len(t, report.Frames, 4)
		assert.Equal(t, "7days", report.Frames[0].TimeFrame)
		assert.Equal(t, "6months", report.Frames[3].TimeFrame)
	})

	t.Run("configured format to file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Report.Format = "yaml"
		dir := filepath.Join(t.TempDir(), "reports")

		out, err := run(t, cfg, snapshot(), "report", "-o", dir)
		require.NoError(t, err)

		matches, err := filepath.Glob(filepath.Join(dir, "parts-report-all-regions-*.yaml"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Report written to "+matches[0]+"\n", out)

		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), "location: All Regions")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := run(t, testConfig(), snapshot(), "report", "--format", "pdf", "--stdout")

		assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
	})
}

func TestCLI_Import(t *testing.T) {
	// Given
	target := filepath.Join(t.TempDir(), "atlas.db")

	// When
	out, err := run(t, testConfig(), snapshot(), "import", "--db", target)

	// Then
	require.NoError(t, err)
	assert.Contains(t, out, "regions")
	assert.Contains(t, out, fmt.Sprintf("%-24s %8d rows", "failures", 100))

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: target})
	require.NoError(t, err)
	defer db.Close()
	s, err := duckdbdataset.NewStore(db)
	require.NoError(t, err)
	regions, err := s.LoadRegions(context.Background())
	require.NoError(t, err)
	assert.Len(t, regions, 3)
}

func TestCLI_Import_SameDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Source = config.Source{Kind: config.SourceDuckDB, DbPath: "atlas.db"}

	_, err := run(t, cfg, snapshot(), "import", "--db", "./atlas.db")

	assert.EqualError(t, err, "import source and target are the same database: ./atlas.db")
}
