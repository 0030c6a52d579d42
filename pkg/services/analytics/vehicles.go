package analytics

import (
	"slices"
	"strings"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/services/inventory"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"golang.org/x/exp/maps"
)

const daysPerMonth = 30.0

// accumulationRule maps vehicle make/model keywords to a typical monthly mileage.
type accumulationRule struct {
	keywords   []string
	minMileage float64
	monthly    float64
}

var accumulationRules = []accumulationRule{
	{keywords: []string{"truck", "f-150"}, monthly: 2500},
	{keywords: []string{"sprinter", "transit"}, monthly: 3000},
	{keywords: []string{"camry", "accord"}, minMileage: 50000, monthly: 2000},
	{keywords: []string{"corolla", "civic"}, monthly: 1200},
	{keywords: []string{"bmw", "mercedes"}, monthly: 800},
}

const defaultMonthlyAccumulation = 1000.0

// MonthlyAccumulation is the recorded monthly mileage of a vehicle, or an estimate from
// its make and model when nothing was recorded.
func MonthlyAccumulation(vt store.VehicleType, v store.Vehicle) float64 {
	if v.MonthlyAccumulation > 0 {
		return v.MonthlyAccumulation
	}
	name := strings.ToLower(vt.Make + " " + vt.Model)
	for _, rule := range accumulationRules {
		if v.Mileage <= rule.minMileage && rule.minMileage > 0 {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.monthly
			}
		}
	}
	return defaultMonthlyAccumulation
}

// VehicleBreakdown lists the registered vehicle types in scope, most registered first,
// with the average mileage projected to the end of the time frame.
func VehicleBreakdown(
	snap *dataset.Snapshot,
	tf domain.TimeFrame,
	scope domain.RegionScope,
	source inventory.Source,
) []domain.VehicleLocationData {
	regions := FilterRegions(snap.Regions, scope)
	registrations := RegistrationsByType(snap.RegionVehicleTypes, regions)

	inScope := make(map[int]struct{}, len(regions))
	for _, r := range regions {
		inScope[r.ID] = struct{}{}
	}

	types := make(map[int]store.VehicleType, len(snap.VehicleTypes))
	for _, vt := range snap.VehicleTypes {
		types[vt.ID] = vt
	}

	months := float64(tf.Days()) / daysPerMonth
	scoped := make(map[int][]float64)
	fleet := make(map[int][]float64)
	for _, v := range snap.Vehicles {
		vt, ok := types[v.TypeID]
		if !ok {
			continue
		}
		projected := v.Mileage + MonthlyAccumulation(vt, v)*months
		fleet[v.TypeID] = append(fleet[v.TypeID], projected)
		if v.RegionID != nil {
			if _, ok := inScope[*v.RegionID]; ok {
				scoped[v.TypeID] = append(scoped[v.TypeID], projected)
			}
		}
	}

	typeIDs := maps.Keys(registrations)
	slices.Sort(typeIDs)

	breakdown := make([]domain.VehicleLocationData, 0, len(typeIDs))
	for _, id := range typeIDs {
		count := registrations[id]
		vt, ok := types[id]
		if count <= 0 || !ok {
			continue
		}
		samples := scoped[id]
		if len(samples) == 0 {
			samples = fleet[id]
		}
		breakdown = append(breakdown, domain.VehicleLocationData{
			TypeID:           id,
			Make:             vt.Make,
			Model:            vt.Model,
			Year:             vt.Year,
			EstimatedMileage: mean(samples),
			Registrations:    count,
			Trend:            source.VehicleTrend(id),
		})
	}

	slices.SortStableFunc(breakdown, func(a, b domain.VehicleLocationData) int {
		switch {
		case a.Registrations > b.Registrations:
			return -1
		case a.Registrations < b.Registrations:
			return 1
		default:
			return 0
		}
	})
	return breakdown
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
