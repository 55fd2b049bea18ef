package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestSignupAndTokenFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/users/", "", map[string]any{
		"email":     "traveler@example.com",
		"password":  "wanderlust1",
		"full_name": "Test Traveler",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "traveler@example.com", created.Email)

	token := login(t, h, "traveler@example.com", "wanderlust1")

	rec = doJSON(t, h, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		ID       string  `json:"id"`
		Email    string  `json:"email"`
		FullName *string `json:"full_name"`
		IsActive bool    `json:"is_active"`
	}
	decodeBody(t, rec, &profile)
	assert.Equal(t, created.ID, profile.ID)
	assert.Equal(t, "traveler@example.com", profile.Email)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Test Traveler", *profile.FullName)
	assert.True(t, profile.IsActive)
}

func TestSignupDuplicateEmail(t *testing.T) {
	h := newTestHandler(t)

	payload := map[string]any{"email": "dup@example.com", "password": "password1"}
	rec := doJSON(t, h, http.MethodPost, "/users/", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/users/", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestSignupRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/users/", "", map[string]any{
		"email": "not-an-email", "password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/users/", "", map[string]any{
		"email": "ok@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenWrongCredentials(t *testing.T) {
	h := newTestHandler(t)
	signup(t, h, "secure@example.com", "rightpassword")

	form := url.Values{"username": {"secure@example.com"}, "password": {"wrongpassword"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Incorrect email or password", body["error"])
}

func TestDemoAccountFirstLogin(t *testing.T) {
	h := newTestHandler(t)

	// No signup: the configured demo pair provisions itself on first login.
	token := login(t, h, "demo@digitalnomad.com", "demo123456")

	rec := doJSON(t, h, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		Email    string  `json:"email"`
		FullName *string `json:"full_name"`
	}
	decodeBody(t, rec, &profile)
	assert.Equal(t, "demo@digitalnomad.com", profile.Email)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Demo User", *profile.FullName)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestHandler(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/profile"},
		{http.MethodPut, "/profile/preferences"},
		{http.MethodGet, "/plans"},
		{http.MethodPost, "/plans"},
	} {
		rec := doJSON(t, h, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Equal(t, "Could not validate credentials", body["error"])
	}

	// A garbage token is as good as none.
	rec := doJSON(t, h, http.MethodGet, "/profile", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileStoreDownIsServerError(t *testing.T) {
	a, h := newTestApp(t)
	token := signup(t, h, "outage@example.com", "password1")

	// A valid token against a dead user store is a server fault, not a
	// credential failure.
	require.NoError(t, a.DB.Close())

	rec := doJSON(t, h, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "internal server error", body["error"])
}

func TestSignupPathIsExact(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/users/someone-else", "", map[string]any{
		"email": "sneaky@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/cities", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
