package report

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/services/analytics"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTitle  = "Parts Stocking Report"
	AllRegionsTag = "All Regions"
)

// Renderer turns an assembled report into a downloadable artifact.
type Renderer interface {
	Render(ctx context.Context, report *domain.Report) (*domain.Artifact, error)
}

type Assembler struct {
	loader dataset.Loader
	engine *analytics.Engine
	now    func() time.Time
}

// NewAssembler builds reports from the loader's tables using the engine's settings. Each
// report reads the tables once through its own cache.
func NewAssembler(loader dataset.Loader, engine *analytics.Engine) *Assembler {
	return &Assembler{
		loader: loader,
		engine: engine,
		now:    time.Now,
	}
}

// BuildReport computes every time frame for the scope concurrently. A table that cannot
// be loaded aborts the whole report.
func (a *Assembler) BuildReport(ctx context.Context, scope domain.RegionScope) (*domain.Report, error) {
	cache := dataset.NewCache(a.loader)
	engine := a.engine.WithLoader(cache)

	timeFrames := domain.AllTimeFrames()
	frames := make([]domain.FrameReport, len(timeFrames))

	g, gctx := errgroup.WithContext(ctx)
	for i, tf := range timeFrames {
		g.Go(func() error {
			frame, err := engine.Frame(gctx, tf, scope)
			if err != nil {
				return fmt.Errorf("failed to compute %s: %w", tf, err)
			}
			frames[i] = frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	regions, err := cache.LoadRegions(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		ID:          uuid.NewString(),
		Title:       DefaultTitle,
		Location:    LocationLabel(regions, scope),
		Scope:       scope,
		GeneratedAt: a.now().UTC(),
		Frames:      frames,
	}, nil
}

// GenerateReport builds the report and hands it to the renderer. Renderer failures are
// returned as is.
func (a *Assembler) GenerateReport(
	ctx context.Context,
	scope domain.RegionScope,
	renderer Renderer,
) (*domain.Artifact, error) {
	logger := zerolog.Ctx(ctx)
	started := a.now()

	report, err := a.BuildReport(ctx, scope)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build report")
		return nil, err
	}

	artifact, err := renderer.Render(ctx, report)
	if err != nil {
		logger.Error().Err(err).Str("report_id", report.ID).Msg("failed to render report")
		return nil, err
	}

	logger.Info().
		Str("report_id", report.ID).
		Str("location", report.Location).
		Str("artifact", artifact.Name).
		Dur("duration", a.now().Sub(started)).
		Msg("report generated")

	return artifact, nil
}

// LocationLabel names the scope: "All Regions", "<county>, <state>" or "<state>".
func LocationLabel(regions []store.Region, scope domain.RegionScope) string {
	byID := make(map[int]store.Region, len(regions))
	for _, r := range regions {
		byID[r.ID] = r
	}

	switch {
	case scope.CountyID != nil:
		county, ok := byID[*scope.CountyID]
		if !ok {
			return fmt.Sprintf("Region %d", *scope.CountyID)
		}
		if county.ParentID != nil {
			if state, ok := byID[*county.ParentID]; ok {
				return county.Name + ", " + state.Name
			}
		}
		return county.Name
	case scope.StateID != nil:
		if state, ok := byID[*scope.StateID]; ok {
			return state.Name
		}
		return fmt.Sprintf("Region %d", *scope.StateID)
	default:
		return AllRegionsTag
	}
}
