package model

import (
	"time"
)

const (
	DefaultTheme         = "light"
	DefaultNotifications = true
)

// Preference holds per-user display and notification settings.
// Every user gets exactly one row, seeded with defaults at signup.
type Preference struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Theme         string    `db:"theme"`
	Notifications bool      `db:"notifications"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
