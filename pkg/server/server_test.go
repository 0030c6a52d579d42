package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/parts-atlas/pkg/models/api"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/parts-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) Regions(ctx context.Context, scope domain.RegionScope) ([]domain.RegionSummary, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]domain.RegionSummary), args.Error(1)
}

func (m *mockAnalytics) Metrics(
	ctx context.Context,
	tf domain.TimeFrame,
	scope domain.RegionScope,
) (domain.DashboardMetrics, error) {
	args := m.Called(ctx, tf, scope)
	return args.Get(0).(domain.DashboardMetrics), args.Error(1)
}

func (m *mockAnalytics) Recommendations(
	ctx context.Context,
	tf domain.TimeFrame,
	scope domain.RegionScope,
) ([]domain.PartStockRecommendation, error) {
	args := m.Called(ctx, tf, scope)
	return args.Get(0).([]domain.PartStockRecommendation), args.Error(1)
}

func (m *mockAnalytics) Insights(
	ctx context.Context,
	tf domain.TimeFrame,
	scope domain.RegionScope,
) ([]domain.MarketInsight, error) {
	args := m.Called(ctx, tf, scope)
	return args.Get(0).([]domain.MarketInsight), args.Error(1)
}

func (m *mockAnalytics) Vehicles(
	ctx context.Context,
	tf domain.TimeFrame,
	scope domain.RegionScope,
) ([]domain.VehicleLocationData, error) {
	args := m.Called(ctx, tf, scope)
	return args.Get(0).([]domain.VehicleLocationData), args.Error(1)
}

func (m *mockAnalytics) Demand(ctx context.Context, tf domain.TimeFrame) (domain.ForecastDemand, error) {
	args := m.Called(ctx, tf)
	return args.Get(0).(domain.ForecastDemand), args.Error(1)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateReport(
	ctx context.Context,
	scope domain.RegionScope,
	renderer report.Renderer,
) (*domain.Artifact, error) {
	args := m.Called(ctx, scope, renderer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	mockAn := new(mockAnalytics)
	mockGen := new(mockGenerator)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Analytics: mockAn,
			Reports:   mockGen,
			Renderers: export.NewRenderer,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	state := 1

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "ListRegions",
			path: "/api/v1/regions",
			setupMocks: func() {
				mockAn.On("Regions", mock.Anything, domain.RegionScope{}).
					Return([]domain.RegionSummary{{ID: 1, Name: "Texas", Type: "state", Population: 29000000}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Region{{ID: 1, Name: "Texas", Type: "state", Population: 29000000}},
			parseResponse:  unmarshalResponse[[]api.Region](),
		},
		{
			name: "GetMetrics",
			path: "/api/v1/metrics?state=1&time_frame=3months",
			setupMocks: func() {
				mockAn.On("Metrics", mock.Anything, domain.TimeFrame3Months, domain.RegionScope{StateID: &state}).
					Return(domain.DashboardMetrics{PredictedDemandUnits: 37.5, RevenueOpportunity: 1250, CriticalItems: 2}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       api.DashboardMetrics{PredictedDemandUnits: 37.5, RevenueOpportunity: 1250, CriticalItems: 2},
			parseResponse:  unmarshalResponse[api.DashboardMetrics](),
		},
		{
			name: "ListRecommendations",
			path: "/api/v1/recommendations",
			setupMocks: func() {
				mockAn.On("Recommendations", mock.Anything, domain.TimeFrame6Months, domain.RegionScope{}).
					Return([]domain.PartStockRecommendation{{
						PartID:             10,
						PartNumber:         "P0010",
						PartName:           "Brake Pads",
						CurrentStock:       40,
						RecommendedStock:   120,
						Status:             domain.StockCritical,
						EstimatedDemand:    100,
						RevenueOpportunity: 1200,
						IsCritical:         true,
						StockingTrend:      domain.TrendUp,
						DemandTrend:        domain.TrendFlat,
					}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.Recommendation{{
				PartID:             10,
				PartNumber:         "P0010",
				PartName:           "Brake Pads",
				CurrentStock:       40,
				RecommendedStock:   120,
				Status:             "Critical",
				EstimatedDemand:    100,
				RevenueOpportunity: 1200,
				IsCritical:         true,
				StockingTrend:      int(domain.TrendUp),
				DemandTrend:        int(domain.TrendFlat),
			}},
			parseResponse: unmarshalResponse[[]api.Recommendation](),
		},
		{
			name: "ListInsights",
			path: "/api/v1/insights?time_frame=1month",
			setupMocks: func() {
				mockAn.On("Insights", mock.Anything, domain.TimeFrame1Month, domain.RegionScope{}).
					Return([]domain.MarketInsight{}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.MarketInsight{},
			parseResponse:  unmarshalResponse[[]api.MarketInsight](),
		},
		{
			name: "ListVehicles_DataUnavailable",
			path: "/api/v1/vehicles",
			setupMocks: func() {
				mockAn.On("Vehicles", mock.Anything, domain.TimeFrame6Months, domain.RegionScope{}).
					Return([]domain.VehicleLocationData(nil), fmt.Errorf("failed to load vehicles: %w", domain.ErrDataUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expected:       "failed to compute vehicle breakdown\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name: "GetDemand",
			path: "/api/v1/demand?time_frame=7days",
			setupMocks: func() {
				mockAn.On("Demand", mock.Anything, domain.TimeFrame7Days).
					Return(domain.ForecastDemand{
						TimeFrame:        domain.TimeFrame7Days,
						Days:             7,
						Parts:            []domain.ForecastPart{{PartID: 10, PartNumber: "P0010", PartName: "Brake Pads", Demand: 5, RecommendedStock: 144, RetailPrice: 89.99}},
						TotalDemand:      5,
						TotalStock:       144,
						PotentialRevenue: 449.95,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.ForecastDemand{
				TimeFrame:        "7days",
				Days:             7,
				Parts:            []api.ForecastPart{{PartID: 10, PartNumber: "P0010", PartName: "Brake Pads", ExpectedDemand: 5, RecommendedStock: 144, RetailPrice: 89.99}},
				TotalDemand:      5,
				TotalStock:       144,
				PotentialRevenue: 449.95,
			},
			parseResponse: unmarshalResponse[api.ForecastDemand](),
		},
		{
			name:           "GetMetrics_InvalidTimeFrame",
			path:           "/api/v1/metrics?time_frame=2weeks",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "invalid 'time_frame' parameter. Expected one of 7days, 1month, 3months, 6months\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name: "GetReport",
			path: "/api/v1/report?format=json",
			setupMocks: func() {
				mockGen.On("GenerateReport", mock.Anything, domain.RegionScope{}, export.JSONRenderer{}).
					Return(&domain.Artifact{
						Name:        "parts-report-all-regions-20250101.json",
						ContentType: "application/json",
						Data:        []byte(`{"title":"Parts Stocking Report","location":"All Regions"}`),
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       api.Report{Title: "Parts Stocking Report", Location: "All Regions"},
			parseResponse:  unmarshalResponse[api.Report](),
		},
		{
			name:           "GetReport_UnsupportedFormat",
			path:           "/api/v1/report?format=pdf",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "unsupported report format: \"pdf\"\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	web := NewWebAPI(Config{Addr: ":0", Dependencies: Dependencies{Logger: zerolog.Nop()}})

	assert.Equal(t, defaultShutdownTimeout, web.shutdownTimeout)
	assert.Equal(t, ":0", web.server.Addr)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
