package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/nomadatlas/nomadatlas/internal/db"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway sqlite database with all migrations applied.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

// clearCities removes the seeded starter catalog so fixtures fully control
// query results.
func clearCities(t *testing.T, database *sqlx.DB) {
	t.Helper()
	_, err := database.Exec(`DELETE FROM cities`)
	require.NoError(t, err)
}
