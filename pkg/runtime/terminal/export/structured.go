package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/adapters"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/report"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// NewRenderer returns the renderer for a format name.
func NewRenderer(format string) (report.Renderer, error) {
	switch format {
	case FormatText, "":
		r, err := NewTextRenderer(DefaultTableConfig())
		if err != nil {
			return nil, err
		}
		return r, nil
	case FormatYAML, "yml":
		return YAMLRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

type YAMLRenderer struct{}

func (YAMLRenderer) Render(_ context.Context, report *domain.Report) (*domain.Artifact, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(adapters.MapReportDomainToApi(*report)); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", domain.ErrRenderFailure, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", domain.ErrRenderFailure, err)
	}
	return &domain.Artifact{
		Name:        fileName(report, "yaml"),
		ContentType: "application/yaml",
		Data:        buf.Bytes(),
	}, nil
}

type JSONRenderer struct{}

func (JSONRenderer) Render(_ context.Context, report *domain.Report) (*domain.Artifact, error) {
	data, err := json.MarshalIndent(adapters.MapReportDomainToApi(*report), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", domain.ErrRenderFailure, err)
	}
	return &domain.Artifact{
		Name:        fileName(report, "json"),
		ContentType: "application/json",
		Data:        data,
	}, nil
}
