package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/nomadatlas/nomadatlas/internal/ctxkeys"
	"github.com/nomadatlas/nomadatlas/internal/model"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
)

type userHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *userHandler {
	return &userHandler{
		authService: authService,
		userService: userService,
	}
}

type signupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type createdUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type preferencesRequest struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

type preferencesResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// Create registers a new account.
// POST /users/
func (h *userHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		if errors.Is(err, service.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, "invalid email address")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, createdUserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// Profile returns the authenticated user.
// GET /profile
func (h *userHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
}

// UpdatePreferences replaces the user's preference record.
// PUT /profile/preferences
func (h *userHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Absent fields keep their defaults, matching the stored defaults.
	req := preferencesRequest{
		Theme:         model.DefaultTheme,
		Notifications: model.DefaultNotifications,
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pref, err := h.userService.UpdatePreferences(user.ID, req.Theme, req.Notifications)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store preferences")
		return
	}

	writeJSON(w, http.StatusOK, preferencesResponse{
		ID:            pref.ID,
		UserID:        pref.UserID,
		Theme:         pref.Theme,
		Notifications: pref.Notifications,
	})
}
