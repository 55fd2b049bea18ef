package service

import (
	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
)

type UserService struct {
	users       repository.UserRepository
	preferences repository.PreferenceRepository
}

func NewUserService(users repository.UserRepository, preferences repository.PreferenceRepository) *UserService {
	return &UserService{
		users:       users,
		preferences: preferences,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.users.ByID(id)
}

func (s *UserService) ByEmail(email string) (*model.User, error) {
	return s.users.ByEmail(email)
}

func (s *UserService) List(skip, limit int) ([]model.User, error) {
	return s.users.List(skip, limit)
}

func (s *UserService) Preferences(userID string) (*model.Preference, error) {
	return s.preferences.ByUserID(userID)
}

// UpdatePreferences stores the full preference record with upsert semantics
// and returns the persisted row.
func (s *UserService) UpdatePreferences(userID, theme string, notifications bool) (*model.Preference, error) {
	pref := &model.Preference{
		UserID:        userID,
		Theme:         theme,
		Notifications: notifications,
	}

	err := s.preferences.Upsert(pref)
	if err != nil {
		return nil, err
	}

	return pref, nil
}
