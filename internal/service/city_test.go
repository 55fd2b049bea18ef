package service_test

import (
	"errors"
	"testing"

	"github.com/nomadatlas/nomadatlas/internal/dataset"
	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCityRepo simulates an unavailable primary store.
type failingCityRepo struct{}

func (failingCityRepo) Search(repository.CityFilter) ([]model.City, error) {
	return nil, errors.New("connection refused")
}

type fixedCityRepo struct {
	cities []model.City
}

func (r fixedCityRepo) Search(repository.CityFilter) ([]model.City, error) {
	return r.cities, nil
}

func loadFallback(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load("")
	require.NoError(t, err)
	require.NotZero(t, ds.Len())
	return ds
}

func TestCitySearchPrefersPrimaryStore(t *testing.T) {
	primary := []model.City{{ID: "store-city", Name: "Storeville", Country: "PT"}}
	cities := service.NewCityService(fixedCityRepo{cities: primary}, loadFallback(t))

	got := cities.SearchOrFallback(repository.CityFilter{})
	require.Len(t, got, 1)
	assert.Equal(t, "store-city", got[0].ID)
}

func TestCitySearchFallsBackWhenStoreDown(t *testing.T) {
	fallback := loadFallback(t)
	cities := service.NewCityService(failingCityRepo{}, fallback)

	got := cities.SearchOrFallback(repository.CityFilter{})
	assert.Len(t, got, fallback.Len())

	// The error-propagating path still reports the failure.
	_, err := cities.Search(repository.CityFilter{})
	assert.Error(t, err)
}

func TestCityByIDUsesFallbackOnly(t *testing.T) {
	// Even with a healthy store, single-city lookups resolve from the static
	// dataset.
	primary := []model.City{{ID: "store-city", Name: "Storeville", Country: "PT"}}
	cities := service.NewCityService(fixedCityRepo{cities: primary}, loadFallback(t))

	assert.Nil(t, cities.ByID("store-city"))

	city := cities.ByID("lisbon-pt")
	require.NotNil(t, city)
	assert.Equal(t, "Lisbon", city.Name)
}
