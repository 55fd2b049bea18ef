package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nomadatlas/nomadatlas/internal/db"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-not-for-production"

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func newAuthService(t *testing.T, database *sqlx.DB, demo service.DemoPolicy) (*service.AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(database)
	emails := service.NewEmailService("", "hello@example.com", "NomadAtlas", true)
	auth := service.NewAuthService(users, emails, testJWTSecret, 30*time.Minute, demo)
	return auth, users
}
