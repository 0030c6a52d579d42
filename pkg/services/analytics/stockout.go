package analytics

import (
	"fmt"
	"math"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
)

// SafetyStockDays is the buffer added on top of period demand when sizing a reorder.
const SafetyStockDays = 14

// DaysUntilStockout is how many whole days the stock lasts at the period's daily demand
// rate, +Inf when there is no demand.
func DaysUntilStockout(stock, demand float64, tf domain.TimeFrame) float64 {
	if demand <= 0 {
		return math.Inf(1)
	}
	daily := demand / float64(tf.Days())
	return math.Floor(stock / daily)
}

func StockoutLabel(days float64) string {
	switch {
	case math.IsInf(days, 1):
		return "no stockout risk"
	case days <= 0:
		return "out of stock"
	case days <= 7:
		return fmt.Sprintf("critical, %d days", int(days))
	case days <= 30:
		return fmt.Sprintf("low, %d days", int(days))
	default:
		return fmt.Sprintf("%d days", int(days))
	}
}

// RecommendedOrderQty covers period demand plus safetyDays of daily demand, less what is
// already on hand. Daily demand always uses the 180 day baseline regardless of frame.
func RecommendedOrderQty(stock, demand float64, safetyDays int) int {
	daily := demand / domain.BaselineDays
	need := math.Ceil(demand + daily*float64(safetyDays) - stock)
	return int(max(need, 0))
}
