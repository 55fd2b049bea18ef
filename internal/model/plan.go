package model

import (
	"encoding/json"
	"time"
)

// TravelPlan is a user-created itinerary. The date range, transportation
// legs, accommodation choices, and budget breakdown are semi-free-form
// documents supplied by the client and stored verbatim.
type TravelPlan struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Cities         []string        `json:"cities"`
	DateRange      json.RawMessage `json:"date_range"`
	Transportation json.RawMessage `json:"transportation"`
	Accommodation  json.RawMessage `json:"accommodation"`
	Budget         json.RawMessage `json:"budget"`
	CreatedAt      time.Time       `json:"created_at"`
}
