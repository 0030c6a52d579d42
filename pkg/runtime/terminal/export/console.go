package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/importer"
)

const metricsTemplate = `Predicted demand:      {{printf "%.1f" .PredictedDemandUnits}} units{{with .PreviousPredictedDemandUnits}} (previous {{printf "%.1f" (deref .)}}){{end}}
Revenue opportunity:   ${{printf "%.2f" .RevenueOpportunity}}{{with .PreviousRevenueOpportunity}} (previous ${{printf "%.2f" (deref .)}}){{end}}
Parts coverage:        {{printf "%.2f" .PartsCoverageRatio}}%
Critical needs:        {{.CriticalStockingNeeds}}
Critical items:        {{.CriticalItems}}
`

const restockTemplate = `{{range .}}{{printf "%-12s %-28s %-10s %8d %8d %8d  %s" .PartNumber (truncate .PartName 28) .Status .CurrentStock .Demand .RecommendedQty .StockoutLabel}}
{{else}}No stocking recommendations.
{{end}}`

const regionsTemplate = `{{range .}}{{printf "%6d  %-8s %-32s %12d" .ID .Type .Name .Population}}
{{else}}No regions matched.
{{end}}`

const demandTemplate = `{{range .Parts}}{{printf "%-12s %-28s %8d %8d  $%.2f" .PartNumber (truncate .PartName 28) .Demand .RecommendedStock .RetailPrice}}
{{else}}No demand forecast.
{{end}}Total demand:          {{.TotalDemand}} units over {{.Days}} days
Total stock:           {{.TotalStock}} units
Potential revenue:     ${{printf "%.2f" .PotentialRevenue}}
`

// Console prints quick views to a terminal.
type Console struct {
	writer    io.Writer
	templates *template.Template
}

func NewConsole(writer io.Writer) *Console {
	if writer == nil {
		writer = os.Stdout
	}
	tmpl := template.New("console").Funcs(template.FuncMap{
		"truncate": truncate,
		"deref":    func(v *float64) float64 { return *v },
	})
	template.Must(tmpl.New("metrics").Parse(metricsTemplate))
	template.Must(tmpl.New("restock").Parse(restockTemplate))
	template.Must(tmpl.New("regions").Parse(regionsTemplate))
	template.Must(tmpl.New("demand").Parse(demandTemplate))
	return &Console{writer: writer, templates: tmpl}
}

func (c *Console) execute(name string, data any) error {
	if err := c.templates.ExecuteTemplate(c.writer, name, data); err != nil {
		return fmt.Errorf("failed to print %s: %w", name, err)
	}
	return nil
}

func (c *Console) Metrics(metrics domain.DashboardMetrics) error {
	return c.execute("metrics", metrics)
}

func (c *Console) Restock(lines []domain.RestockLine) error {
	return c.execute("restock", lines)
}

func (c *Console) Demand(demand domain.ForecastDemand) error {
	return c.execute("demand", demand)
}

func (c *Console) Regions(regions []domain.RegionSummary) error {
	return c.execute("regions", regions)
}

func (c *Console) ImportSummary(tables []string, summary importer.Summary) error {
	for _, table := range tables {
		if _, err := fmt.Fprintf(c.writer, "%-24s %8d rows\n", table, summary[table]); err != nil {
			return err
		}
	}
	return nil
}
