package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
)

type TableConfig struct {
	NumberWidth int
	NameWidth   int
	StatusWidth int
	QtyWidth    int
	LabelWidth  int
	MaxRows     int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NumberWidth: 14,
		NameWidth:   32,
		StatusWidth: 10,
		QtyWidth:    8,
		LabelWidth:  20,
		MaxRows:     15,
	}
}

// TextRenderer lays the report out as plain text tables, one section per time frame.
type TextRenderer struct {
	config TableConfig
	tmpl   *template.Template
}

func NewTextRenderer(config TableConfig) (*TextRenderer, error) {
	r := &TextRenderer{config: config}

	funcMap := template.FuncMap{
		"formatRow": func(number, name, status string, stock, demand any, label string, qty any) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %*v | %*v | %-*s | %*v |",
				config.NumberWidth, truncate(number, config.NumberWidth),
				config.NameWidth, truncate(name, config.NameWidth),
				config.StatusWidth, status,
				config.QtyWidth, stock,
				config.QtyWidth, demand,
				config.LabelWidth, truncate(label, config.LabelWidth),
				config.QtyWidth, qty)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", config.NumberWidth+2),
				strings.Repeat("-", config.NameWidth+2),
				strings.Repeat("-", config.StatusWidth+2),
				strings.Repeat("-", config.QtyWidth+2),
				strings.Repeat("-", config.QtyWidth+2),
				strings.Repeat("-", config.LabelWidth+2),
				strings.Repeat("-", config.QtyWidth+2))
		},
		"head": func(lines []domain.RestockLine) []domain.RestockLine {
			if config.MaxRows > 0 && len(lines) > config.MaxRows {
				return lines[:config.MaxRows]
			}
			return lines
		},
		"label": func(tf domain.TimeFrame) string { return tf.Label() },
	}

	tmpl := `{{.Title}}
Location: {{.Location}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}
Report ID: {{.ID}}
{{range .Frames}}
=== {{label .TimeFrame}} ({{.Days}} days) ===
Predicted demand: {{printf "%.0f" .Metrics.PredictedDemandUnits}} units
Revenue opportunity: ${{printf "%.2f" .Metrics.RevenueOpportunity}}
Parts coverage: {{printf "%.1f" .Metrics.PartsCoverageRatio}}%
Critical stocking needs: {{.Metrics.CriticalStockingNeeds}} ({{.Metrics.CriticalItems}} high demand)

{{separator}}
{{formatRow "Part" "Name" "Status" "Stock" "Demand" "Stockout" "Order"}}
{{separator}}
{{range head .Restock}}{{formatRow .PartNumber .PartName (printf "%s" .Status) .CurrentStock .Demand .StockoutLabel .RecommendedQty}}
{{end}}{{separator}}
{{if .Insights}}
Insights:
{{range .Insights}}- {{.Title}}: {{.Value}} ({{.Sentiment}})
  {{.Description}}
{{end}}{{end}}{{if .Vehicles}}
Vehicles:
{{range .Vehicles}}- {{.Year}} {{.Make}} {{.Model}}: {{.Registrations}} registered, ~{{printf "%.0f" .EstimatedMileage}} mi
{{end}}{{end}}{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	r.tmpl = t
	return r, nil
}

func (r *TextRenderer) Render(_ context.Context, report *domain.Report) (*domain.Artifact, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("%w: text: %w", domain.ErrRenderFailure, err)
	}
	return &domain.Artifact{
		Name:        fileName(report, "txt"),
		ContentType: "text/plain; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// fileName derives a download name from the location and generation date.
func fileName(report *domain.Report, ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, report.Location)
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("parts-report-%s-%s.%s", slug, report.GeneratedAt.Format("20060102"), ext)
}
