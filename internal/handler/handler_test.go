package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nomadatlas/nomadatlas/internal/app"
	"github.com/nomadatlas/nomadatlas/internal/config"
	"github.com/nomadatlas/nomadatlas/internal/routes"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the full application against a throwaway database and
// returns it together with the routed handler, exactly as the server
// serves it.
func newTestApp(t *testing.T) (*app.App, http.Handler) {
	t.Helper()

	cfg := &config.Config{
		AppName:       "NomadAtlas",
		AppEnv:        "development",
		DBDriver:      "sqlite",
		DBConnection:  filepath.Join(t.TempDir(), "test.db"),
		DBAutoMigrate: true,
		JWTSecret:     "test-secret-not-for-production",
		JWTExpiry:     30 * time.Minute,
		DemoEmail:     "demo@digitalnomad.com",
		DemoPassword:  "demo123456",
		AllowedOrigin: "*",
	}

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a, routes.SetupRoutes(a)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	_, h := newTestApp(t)
	return h
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// signup registers an account and returns a bearer token for it.
func signup(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/users/", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return login(t, h, email, password)
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()

	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)

	return body.AccessToken
}
