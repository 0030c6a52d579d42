package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/parts-atlas/pkg/services/analytics"
	"github.com/de-tools/parts-atlas/pkg/services/config"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
)

// Session is an opened dataset source plus the engine configured for it.
type Session struct {
	Config *config.Config
	Loader dataset.Loader
	Engine *analytics.Engine
	closer io.Closer
}

func NewSession(cfg *config.Config, loader dataset.Loader, closer io.Closer) *Session {
	return &Session{
		Config: cfg,
		Loader: loader,
		Engine: config.NewEngine(loader, cfg.Inventory),
		closer: closer,
	}
}

func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Opener opens a session when a command runs, after flags are parsed.
type Opener func(ctx context.Context) (*Session, error)

// ConfigOpener loads the config file that configPath points to at call time.
func ConfigOpener(configPath *string) Opener {
	return func(ctx context.Context) (*Session, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loader, closer, err := config.OpenLoader(ctx, cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s source: %w", cfg.Source.Kind, err)
		}
		return NewSession(cfg, loader, closer), nil
	}
}
