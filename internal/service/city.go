package service

import (
	"log/slog"

	"github.com/nomadatlas/nomadatlas/internal/dataset"
	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
)

// CityService is a two-tier retrieval path over the catalog: the primary
// store first, then the static fallback dataset when the store is down.
// Cities are read-only reference data; nothing here writes.
type CityService struct {
	cities   repository.CityRepository
	fallback *dataset.Dataset
}

func NewCityService(cities repository.CityRepository, fallback *dataset.Dataset) *CityService {
	return &CityService{
		cities:   cities,
		fallback: fallback,
	}
}

// Search queries the primary store. Callers that cannot tolerate a failure
// should use SearchOrFallback instead.
func (s *CityService) Search(filter repository.CityFilter) ([]model.City, error) {
	return s.cities.Search(filter)
}

// SearchOrFallback queries the primary store and degrades to the unfiltered
// static dataset when the store is unavailable. The cause is logged; storage
// failures never reach the client on this path.
func (s *CityService) SearchOrFallback(filter repository.CityFilter) []model.City {
	cities, err := s.cities.Search(filter)
	if err != nil {
		slog.Error("city store unavailable, serving fallback dataset",
			"error", err,
			"fallback_size", s.fallback.Len(),
		)
		return s.fallback.All()
	}
	return cities
}

// ByID resolves a city from the static fallback dataset only. This is a
// distinct data path from Search: single-city lookups never hit the store.
func (s *CityService) ByID(id string) *model.City {
	return s.fallback.ByID(id)
}
