package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/parts-atlas/pkg/adapters"
	"github.com/de-tools/parts-atlas/pkg/models/api"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/report"
	"github.com/rs/zerolog"
)

const (
	defaultLimit     = 50
	defaultTimeFrame = domain.TimeFrame6Months
)

// Analytics is the read side of the engine served over HTTP.
type Analytics interface {
	Regions(ctx context.Context, scope domain.RegionScope) ([]domain.RegionSummary, error)
	Metrics(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) (domain.DashboardMetrics, error)
	Recommendations(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) ([]domain.PartStockRecommendation, error)
	Insights(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) ([]domain.MarketInsight, error)
	Vehicles(ctx context.Context, tf domain.TimeFrame, scope domain.RegionScope) ([]domain.VehicleLocationData, error)
	Demand(ctx context.Context, tf domain.TimeFrame) (domain.ForecastDemand, error)
}

type Generator interface {
	GenerateReport(ctx context.Context, scope domain.RegionScope, renderer report.Renderer) (*domain.Artifact, error)
}

type RendererFactory func(format string) (report.Renderer, error)

type Handler struct {
	analytics Analytics
	generator Generator
	renderers RendererFactory
}

func NewHandler(analytics Analytics, generator Generator, renderers RendererFactory) *Handler {
	return &Handler{
		analytics: analytics,
		generator: generator,
		renderers: renderers,
	}
}

func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := parseScope(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	regions, err := h.analytics.Regions(ctx, scope)
	if err != nil {
		writeError(w, r, err, "failed to list regions")
		return
	}

	response := make([]api.Region, 0, len(regions))
	for _, region := range regions {
		response = append(response, adapters.MapRegionDomainToApi(region))
	}
	writeJSON(w, r, response)
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf, scope, err := parseFrameQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics, err := h.analytics.Metrics(ctx, tf, scope)
	if err != nil {
		writeError(w, r, err, "failed to compute metrics")
		return
	}
	writeJSON(w, r, adapters.MapMetricsDomainToApi(metrics))
}

func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf, scope, err := parseFrameQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := h.analytics.Recommendations(ctx, tf, scope)
	if err != nil {
		writeError(w, r, err, "failed to generate recommendations")
		return
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	response := make([]api.Recommendation, 0, len(recs))
	for _, rec := range recs {
		response = append(response, adapters.MapRecommendationDomainToApi(rec))
	}
	writeJSON(w, r, response)
}

func (h *Handler) ListInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf, scope, err := parseFrameQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	insights, err := h.analytics.Insights(ctx, tf, scope)
	if err != nil {
		writeError(w, r, err, "failed to generate insights")
		return
	}

	response := make([]api.MarketInsight, 0, len(insights))
	for _, insight := range insights {
		response = append(response, adapters.MapInsightDomainToApi(insight))
	}
	writeJSON(w, r, response)
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf, scope, err := parseFrameQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vehicles, err := h.analytics.Vehicles(ctx, tf, scope)
	if err != nil {
		writeError(w, r, err, "failed to compute vehicle breakdown")
		return
	}

	response := make([]api.VehicleLocation, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, adapters.MapVehicleDomainToApi(v))
	}
	writeJSON(w, r, response)
}

// GetDemand serves the demand forecast scaled to the requested time frame. The
// forecast table is not regional, so region parameters are ignored.
func (h *Handler) GetDemand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf, _, err := parseFrameQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	demand, err := h.analytics.Demand(ctx, tf)
	if err != nil {
		writeError(w, r, err, "failed to compute forecast demand")
		return
	}
	writeJSON(w, r, adapters.MapForecastDemandDomainToApi(demand))
}

// GetReport renders the full report for the scope and serves it as a download.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	scope, err := parseScope(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	renderer, err := h.renderers(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err, "failed to select renderer")
		return
	}

	artifact, err := h.generator.GenerateReport(ctx, scope, renderer)
	if err != nil {
		writeError(w, r, err, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		logger.Error().
			Err(err).
			Str("artifact", artifact.Name).
			Msg("failed to write report")
	}
}

func parseOptionalInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' parameter. Expected an integer id", key)
	}
	return &v, nil
}

func parseScope(r *http.Request) (domain.RegionScope, error) {
	state, err := parseOptionalInt(r, "state")
	if err != nil {
		return domain.RegionScope{}, err
	}
	county, err := parseOptionalInt(r, "county")
	if err != nil {
		return domain.RegionScope{}, err
	}
	return domain.RegionScope{StateID: state, CountyID: county}, nil
}

func parseFrameQuery(r *http.Request) (domain.TimeFrame, domain.RegionScope, error) {
	tf := defaultTimeFrame
	if raw := r.URL.Query().Get("time_frame"); raw != "" {
		parsed, err := domain.ParseTimeFrame(raw)
		if err != nil {
			return "", domain.RegionScope{}, fmt.Errorf("invalid 'time_frame' parameter. Expected one of 7days, 1month, 3months, 6months")
		}
		tf = parsed
	}
	scope, err := parseScope(r)
	return tf, scope, err
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid 'limit' parameter. Expected a positive integer")
	}
	return limit, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusOf(err)
	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Int("status", status).
		Msg(msg)

	if status == http.StatusBadRequest {
		http.Error(w, err.Error(), status)
		return
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
