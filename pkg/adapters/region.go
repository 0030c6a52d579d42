package adapters

import (
	"github.com/de-tools/parts-atlas/pkg/models/api"
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/models/store"
)

func MapStoreRegionToDomain(r store.Region) domain.RegionSummary {
	return domain.RegionSummary{
		ID:         r.ID,
		Name:       r.Name,
		Type:       r.Type,
		ParentID:   r.ParentID,
		Population: r.Population,
	}
}

func MapRegionDomainToApi(r domain.RegionSummary) api.Region {
	return api.Region{
		ID:         r.ID,
		Name:       r.Name,
		Type:       r.Type,
		ParentID:   r.ParentID,
		Population: r.Population,
	}
}
