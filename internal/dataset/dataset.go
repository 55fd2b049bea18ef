// Package dataset holds the static fallback copy of the city catalog. It is
// loaded once at startup and read-only afterwards; the query path falls back
// to it when the primary store is unavailable.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nomadatlas/nomadatlas/internal/model"
)

//go:embed cities.json
var embeddedCities []byte

type Dataset struct {
	cities []model.City
	byID   map[string]*model.City
}

type citiesFile struct {
	Cities []model.City `json:"cities"`
}

// Load reads the fallback catalog from path, or the embedded copy when path
// is empty.
func Load(path string) (*Dataset, error) {
	data := embeddedCities
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read cities file: %w", err)
		}
	}

	var file citiesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse cities file: %w", err)
	}

	ds := &Dataset{
		cities: file.Cities,
		byID:   make(map[string]*model.City, len(file.Cities)),
	}
	for i := range ds.cities {
		ds.byID[ds.cities[i].ID] = &ds.cities[i]
	}

	return ds, nil
}

// All returns the full fallback catalog. Callers must not mutate it.
func (d *Dataset) All() []model.City {
	return d.cities
}

// ByID returns the city with the given id, or nil if absent.
func (d *Dataset) ByID(id string) *model.City {
	return d.byID[id]
}

func (d *Dataset) Len() int {
	return len(d.cities)
}
