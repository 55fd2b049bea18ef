package service_test

import (
	"encoding/json"
	"testing"

	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCreateRequiresCities(t *testing.T) {
	database := newTestDB(t)
	plans := service.NewPlanService(repository.NewPlanRepository(database))

	_, err := plans.Create("someone", &model.TravelPlan{})
	assert.ErrorIs(t, err, service.ErrNoCities)
}

func TestPlanCreateBindsOwner(t *testing.T) {
	database := newTestDB(t)
	users := repository.NewUserRepository(database)
	plans := service.NewPlanService(repository.NewPlanRepository(database))

	owner := &model.User{Email: "owner@example.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, users.Create(owner))

	created, err := plans.Create(owner.ID, &model.TravelPlan{
		// The user id in the payload is ignored in favor of the caller's.
		UserID: "spoofed-user",
		Cities: []string{"bali-id"},
		Budget: json.RawMessage(`{"total":1200}`),
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)

	got, err := plans.ListForUser(owner.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}
