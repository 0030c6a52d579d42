package analytics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastRows(n int) []store.DemandForecast {
	rows := make([]store.DemandForecast, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, store.DemandForecast{
			PartID:           i,
			Name:             fmt.Sprintf("Part %d", i),
			Number:           fmt.Sprintf("P%04d", i),
			ExpectedDemand:   int64(i * 10),
			RecommendedStock: int64(i * 12),
			RetailPrice:      2,
		})
	}
	return rows
}

func TestForecastDemand(t *testing.T) {
	rising := 0.3

	tests := []struct {
		name          string
		forecasts     []store.DemandForecast
		tf            domain.TimeFrame
		expectedIDs   []int
		expectedUnits []int64
		totalDemand   int64
		totalStock    int64
		revenue       float64
	}{
		{
			name: "scales to one month and clips negative demand",
			forecasts: []store.DemandForecast{
				{PartID: 1, ExpectedDemand: 90, RecommendedStock: 100, RetailPrice: 10.25},
				{PartID: 2, ExpectedDemand: 120, RecommendedStock: 150, RetailPrice: 99.5, DemandTrend: &rising},
				{PartID: 3, ExpectedDemand: -30, RecommendedStock: 5, RetailPrice: 40},
			},
			tf:            domain.TimeFrame1Month,
			expectedIDs:   []int{2, 1, 3},
			expectedUnits: []int64{20, 15, 0},
			totalDemand:   35,
			totalStock:    255,
			revenue:       2143.75,
		},
		{
			name: "rounds half to even",
			forecasts: []store.DemandForecast{
				{PartID: 1, ExpectedDemand: 3, RecommendedStock: 4, RetailPrice: 100},
				{PartID: 2, ExpectedDemand: 9, RecommendedStock: 10, RetailPrice: 100},
			},
			tf:            domain.TimeFrame1Month,
			expectedIDs:   []int{2, 1},
			expectedUnits: []int64{2, 0},
			totalDemand:   2,
			totalStock:    14,
			revenue:       200,
		},
		{
			name: "ties keep table order",
			forecasts: []store.DemandForecast{
				{PartID: 5, ExpectedDemand: 180, RecommendedStock: 1, RetailPrice: 1.1},
				{PartID: 4, ExpectedDemand: 180, RecommendedStock: 1, RetailPrice: 1.1},
			},
			tf:            domain.TimeFrame7Days,
			expectedIDs:   []int{5, 4},
			expectedUnits: []int64{7, 7},
			totalDemand:   14,
			totalStock:    2,
			revenue:       15.4,
		},
		{
			name:          "keeps the top twenty and totals every row",
			forecasts:     forecastRows(25),
			tf:            domain.TimeFrame6Months,
			expectedIDs:   []int{25, 24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6},
			expectedUnits: []int64{250, 240, 230, 220, 210, 200, 190, 180, 170, 160, 150, 140, 130, 120, 110, 100, 90, 80, 70, 60},
			totalDemand:   3250,
			totalStock:    3900,
			revenue:       6500,
		},
		{
			name:          "empty table",
			tf:            domain.TimeFrame3Months,
			expectedIDs:   []int{},
			expectedUnits: []int64{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ForecastDemand(tc.forecasts, tc.tf)

			ids := make([]int, 0, len(got.Parts))
			units := make([]int64, 0, len(got.Parts))
			for _, p := range got.Parts {
				ids = append(ids, p.PartID)
				units = append(units, p.Demand)
			}
			assert.Equal(t, tc.expectedIDs, ids)
			assert.Equal(t, tc.expectedUnits, units)
			assert.Equal(t, tc.totalDemand, got.TotalDemand)
			assert.Equal(t, tc.totalStock, got.TotalStock)
			assert.InDelta(t, tc.revenue, got.PotentialRevenue, 1e-9)
			assert.Equal(t, tc.tf, got.TimeFrame)
			assert.Equal(t, tc.tf.Days(), got.Days)
		})
	}
}

func TestForecastDemand_Trend(t *testing.T) {
	falling, flat := -0.2, 0.0
	got := ForecastDemand([]store.DemandForecast{
		{PartID: 1, ExpectedDemand: 30, DemandTrend: &falling},
		{PartID: 2, ExpectedDemand: 20, DemandTrend: &flat},
		{PartID: 3, ExpectedDemand: 10},
	}, domain.TimeFrame6Months)

	require.Len(t, got.Parts, 3)
	assert.Equal(t, domain.TrendDown, got.Parts[0].Trend)
	assert.Equal(t, domain.TrendFlat, got.Parts[1].Trend)
	assert.Equal(t, domain.TrendFlat, got.Parts[2].Trend)
}

type failingForecastLoader struct {
	*dataset.Snapshot
}

func (failingForecastLoader) LoadDemandForecasts(context.Context) ([]store.DemandForecast, error) {
	return nil, fmt.Errorf("%w: demand_forecast: table not found", domain.ErrDataUnavailable)
}

func TestEngine_Demand(t *testing.T) {
	ctx := context.Background()

	t.Run("reads the forecast table", func(t *testing.T) {
		snap := &dataset.Snapshot{DemandForecasts: forecastRows(3)}
		engine := NewEngine(snap, nil)

		got, err := engine.Demand(ctx, domain.TimeFrame3Months)

		require.NoError(t, err)
		require.Len(t, got.Parts, 3)
		assert.Equal(t, int64(15), got.Parts[0].Demand)
		assert.Equal(t, int64(30), got.TotalDemand)
		assert.Equal(t, int64(72), got.TotalStock)
		assert.InDelta(t, 60, got.PotentialRevenue, 1e-9)
	})

	t.Run("propagates load failures", func(t *testing.T) {
		engine := NewEngine(failingForecastLoader{Snapshot: &dataset.Snapshot{}}, nil)

		_, err := engine.Demand(ctx, domain.TimeFrame6Months)

		assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
	})
}
