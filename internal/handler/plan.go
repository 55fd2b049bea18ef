package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nomadatlas/nomadatlas/internal/ctxkeys"
	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/service"
)

type planHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *planHandler {
	return &planHandler{
		planService: planService,
	}
}

type createPlanRequest struct {
	Cities         []string        `json:"cities"`
	DateRange      json.RawMessage `json:"date_range"`
	Transportation json.RawMessage `json:"transportation"`
	Accommodation  json.RawMessage `json:"accommodation"`
	Budget         json.RawMessage `json:"budget"`
}

// Create stores a new travel plan for the authenticated user.
// POST /plans
func (h *planHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createPlanRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan := &model.TravelPlan{
		Cities:         req.Cities,
		DateRange:      req.DateRange,
		Transportation: req.Transportation,
		Accommodation:  req.Accommodation,
		Budget:         req.Budget,
	}

	stored, err := h.planService.Create(user.ID, plan)
	if err != nil {
		if errors.Is(err, service.ErrNoCities) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store travel plan")
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// List returns the authenticated user's travel plans, newest first.
// GET /plans?skip&limit
func (h *planHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	plans, err := h.planService.ListForUser(user.ID, skip, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list travel plans")
		return
	}

	writeJSON(w, http.StatusOK, plans)
}
