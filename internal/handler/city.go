package handler

import (
	"net/http"

	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
)

type cityHandler struct {
	cityService *service.CityService
}

func NewCityHandler(cityService *service.CityService) *cityHandler {
	return &cityHandler{
		cityService: cityService,
	}
}

type citiesResponse struct {
	Cities []model.City `json:"cities"`
}

// List returns a page of the catalog without filters. Storage failures
// degrade to the fallback dataset; this endpoint never errors.
// GET /cities?limit&offset
func (h *cityHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.CityFilter{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	cities := h.cityService.SearchOrFallback(filter)
	writeJSON(w, http.StatusOK, citiesResponse{Cities: cities})
}

// Get returns a single city from the static fallback dataset.
// GET /cities/{id}
func (h *cityHandler) Get(w http.ResponseWriter, r *http.Request) {
	city := h.cityService.ByID(r.PathValue("id"))
	if city == nil {
		writeError(w, http.StatusNotFound, "City not found")
		return
	}

	writeJSON(w, http.StatusOK, city)
}

// Filter returns a filtered page of the catalog. A total failure yields a
// best-effort {error} body instead of a raised HTTP error, keeping the city
// browsing surface always-available.
// GET /filter_cities?min_temp&max_temp&max_cost&visa_type&limit&offset
func (h *cityHandler) Filter(w http.ResponseWriter, r *http.Request) {
	filter := repository.CityFilter{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	var err error
	if filter.MinTemp, err = queryFloat(r, "min_temp"); err != nil {
		writeError(w, http.StatusBadRequest, "min_temp must be a number")
		return
	}
	if filter.MaxTemp, err = queryFloat(r, "max_temp"); err != nil {
		writeError(w, http.StatusBadRequest, "max_temp must be a number")
		return
	}
	if filter.MaxCost, err = queryFloat(r, "max_cost"); err != nil {
		writeError(w, http.StatusBadRequest, "max_cost must be a number")
		return
	}
	if visa := r.URL.Query().Get("visa_type"); visa != "" {
		filter.VisaType = &visa
	}

	cities, err := h.cityService.Search(filter)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, citiesResponse{Cities: cities})
}
