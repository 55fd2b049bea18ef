package service

import (
	"errors"

	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
)

var ErrNoCities = errors.New("travel plan needs at least one city")

type PlanService struct {
	plans repository.PlanRepository
}

func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// Create persists the plan structure verbatim, associated to the user.
func (s *PlanService) Create(userID string, plan *model.TravelPlan) (*model.TravelPlan, error) {
	if len(plan.Cities) == 0 {
		return nil, ErrNoCities
	}

	plan.UserID = userID
	err := s.plans.Create(plan)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *PlanService) ListForUser(userID string, skip, limit int) ([]model.TravelPlan, error) {
	return s.plans.ListByUser(userID, skip, limit)
}
