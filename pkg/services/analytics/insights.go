package analytics

import (
	"fmt"
	"sort"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/shopspring/decimal"
)

const (
	// MaxInsights caps how many top-demand recommendations are turned into insights.
	MaxInsights = 20
	// FallbackMarginPercent is the category baseline when no priced part shares the component.
	FallbackMarginPercent = 20.0
)

// MarginBaseline holds the average retail margin per component, in percent.
type MarginBaseline struct {
	byComponent map[int]decimal.Decimal
	names       map[int]string
}

// NewMarginBaseline averages the margin of every priced part within its component.
func NewMarginBaseline(snap *dataset.Snapshot) *MarginBaseline {
	prices := pricesByPart(snap.PartPrices)
	sums := make(map[int]decimal.Decimal)
	counts := make(map[int]int64)
	for _, part := range snap.Parts {
		p, ok := prices[part.ID]
		if !ok || p.RetailPrice <= 0 {
			continue
		}
		sums[part.ComponentID] = sums[part.ComponentID].Add(marginPercent(p.RetailPrice, p.WholesalePrice))
		counts[part.ComponentID]++
	}

	b := &MarginBaseline{
		byComponent: make(map[int]decimal.Decimal, len(sums)),
		names:       make(map[int]string, len(snap.Components)),
	}
	for id, sum := range sums {
		b.byComponent[id] = sum.Div(decimal.NewFromInt(counts[id]))
	}
	for _, c := range snap.Components {
		b.names[c.ID] = c.Name
	}
	return b
}

func (b *MarginBaseline) margin(componentID int) decimal.Decimal {
	if m, ok := b.byComponent[componentID]; ok {
		return m
	}
	return decimal.NewFromFloat(FallbackMarginPercent)
}

func (b *MarginBaseline) category(componentID int) string {
	if name, ok := b.names[componentID]; ok && name != "" {
		return name
	}
	return "category"
}

// GenerateInsights emits one profit insight per top-demand recommendation, comparing the
// part's margin with its component average.
func GenerateInsights(recs []domain.PartStockRecommendation, baseline *MarginBaseline) []domain.MarketInsight {
	top := make([]domain.PartStockRecommendation, len(recs))
	copy(top, recs)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].EstimatedDemand > top[j].EstimatedDemand
	})
	if len(top) > MaxInsights {
		top = top[:MaxInsights]
	}

	insights := make([]domain.MarketInsight, 0, len(top))
	for _, rec := range top {
		if rec.RetailPrice <= 0 {
			continue
		}
		margin := marginPercent(rec.RetailPrice, rec.WholesalePrice).Round(1)
		base := baseline.margin(rec.ComponentID).Round(1)
		advantage := margin.Sub(base)

		insights = append(insights, domain.MarketInsight{
			Type:  domain.InsightProfit,
			Title: fmt.Sprintf("%s margin", rec.PartName),
			Description: fmt.Sprintf(
				"%s (%s) earns a %s%% margin against a %s average of %s%%, on %d projected units",
				rec.PartName, rec.PartNumber, margin.StringFixed(1),
				baseline.category(rec.ComponentID), base.StringFixed(1), rec.EstimatedDemand,
			),
			Value:     signedPoints(advantage),
			Sentiment: sentimentOf(advantage),
		})
	}
	return insights
}

func marginPercent(retail, wholesale float64) decimal.Decimal {
	r := decimal.NewFromFloat(retail)
	return r.Sub(decimal.NewFromFloat(wholesale)).Div(r).Mul(decimal.NewFromInt(100))
}

func signedPoints(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(1) + " pts"
	}
	return d.StringFixed(1) + " pts"
}

func sentimentOf(d decimal.Decimal) domain.Sentiment {
	switch d.Sign() {
	case 1:
		return domain.SentimentPositive
	case -1:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
