package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nomadatlas/nomadatlas/internal/model"
)

type PlanRepository interface {
	Create(plan *model.TravelPlan) error
	ListByUser(userID string, skip, limit int) ([]model.TravelPlan, error)
}

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) PlanRepository {
	return &planRepository{db: db}
}

// planRow is the storage shape: the semi-free-form plan documents live in
// TEXT columns holding JSON exactly as the client sent it.
type planRow struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Cities         string    `db:"cities"`
	DateRange      string    `db:"date_range"`
	Transportation string    `db:"transportation"`
	Accommodation  string    `db:"accommodation"`
	Budget         string    `db:"budget"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r *planRepository) Create(plan *model.TravelPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	cities, err := json.Marshal(plan.Cities)
	if err != nil {
		return fmt.Errorf("marshal cities: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO travel_plans (id, user_id, cities, date_range, transportation, accommodation, budget, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, plan.ID, plan.UserID, string(cities), rawOrEmpty(plan.DateRange), rawOrEmpty(plan.Transportation),
		rawOrEmpty(plan.Accommodation), rawOrEmpty(plan.Budget), plan.CreatedAt)

	return err
}

func (r *planRepository) ListByUser(userID string, skip, limit int) ([]model.TravelPlan, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}

	rows := []planRow{}
	err := r.db.Select(&rows, `
		SELECT * FROM travel_plans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, skip)
	if err != nil {
		return nil, err
	}

	plans := make([]model.TravelPlan, 0, len(rows))
	for _, row := range rows {
		plan, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", row.ID, err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (row planRow) toModel() (model.TravelPlan, error) {
	plan := model.TravelPlan{
		ID:             row.ID,
		UserID:         row.UserID,
		DateRange:      json.RawMessage(row.DateRange),
		Transportation: json.RawMessage(row.Transportation),
		Accommodation:  json.RawMessage(row.Accommodation),
		Budget:         json.RawMessage(row.Budget),
		CreatedAt:      row.CreatedAt,
	}

	if err := json.Unmarshal([]byte(row.Cities), &plan.Cities); err != nil {
		return model.TravelPlan{}, err
	}

	return plan, nil
}

func rawOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
