package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nomadatlas/nomadatlas/internal/model"
)

type PreferenceRepository interface {
	ByUserID(userID string) (*model.Preference, error)
	Upsert(pref *model.Preference) error
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) ByUserID(userID string) (*model.Preference, error) {
	pref := &model.Preference{}
	err := r.db.Get(pref, `SELECT * FROM preferences WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrPreferenceNotFound
	}
	if err != nil {
		return nil, err
	}

	return pref, nil
}

// Upsert replaces the user's preference record, inserting one if it does not
// exist yet. The unique index on preferences.user_id drives the conflict.
func (r *preferenceRepository) Upsert(pref *model.Preference) error {
	if pref.ID == "" {
		pref.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO preferences (id, user_id, theme, notifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = excluded.theme,
			notifications = excluded.notifications,
			updated_at = excluded.updated_at
	`, pref.ID, pref.UserID, pref.Theme, pref.Notifications, pref.CreatedAt, pref.UpdatedAt)
	if err != nil {
		return err
	}

	// Re-read so the caller sees the stored row (the insert ID is discarded
	// when the conflict path runs).
	stored, err := r.ByUserID(pref.UserID)
	if err != nil {
		return err
	}
	*pref = *stored

	return nil
}
