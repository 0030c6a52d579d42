package analytics

import (
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
)

// FilterRegions resolves a scope to the regions it covers. A county selection returns at
// most that county; a state selection returns the state and its direct children; an
// empty scope returns the input unchanged. Unknown ids yield partial or empty results.
func FilterRegions(regions []store.Region, scope domain.RegionScope) []store.Region {
	switch {
	case scope.CountyID != nil:
		for _, r := range regions {
			if r.ID == *scope.CountyID {
				return []store.Region{r}
			}
		}
		return []store.Region{}
	case scope.StateID != nil:
		filtered := make([]store.Region, 0)
		for _, r := range regions {
			if r.ID == *scope.StateID || (r.ParentID != nil && *r.ParentID == *scope.StateID) {
				filtered = append(filtered, r)
			}
		}
		return filtered
	default:
		return regions
	}
}

// LatestRegistrationYear is the most recent year present in the registration table, 0
// when the table is empty.
func LatestRegistrationYear(registrations []store.RegionVehicleType) int {
	latest := 0
	for _, r := range registrations {
		latest = max(latest, r.YearRecorded)
	}
	return latest
}

// RegistrationsByType sums registration counts per vehicle type over the given regions,
// using only the latest recorded year so yearly snapshots are not double counted.
func RegistrationsByType(registrations []store.RegionVehicleType, regions []store.Region) map[int]int64 {
	inScope := make(map[int]struct{}, len(regions))
	for _, r := range regions {
		inScope[r.ID] = struct{}{}
	}

	year := LatestRegistrationYear(registrations)
	counts := make(map[int]int64)
	for _, r := range registrations {
		if r.YearRecorded != year {
			continue
		}
		if _, ok := inScope[r.RegionID]; !ok {
			continue
		}
		counts[r.TypeID] += max(r.RegistrationCount, 0)
	}
	return counts
}
