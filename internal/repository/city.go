package repository

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/nomadatlas/nomadatlas/internal/model"
)

const (
	defaultCityLimit = 50
	maxCityLimit     = 100
)

// CityFilter describes the optional predicates for a catalog search. Nil
// fields impose no constraint; present filters combine with AND.
type CityFilter struct {
	MinTemp  *float64 // lower bound on average temperature
	MaxTemp  *float64 // upper bound on average temperature
	MaxCost  *float64 // housing + food must not exceed this
	VisaType *string  // exact match on visa requirement category
	Limit    int
	Offset   int
}

func (f *CityFilter) normalize() {
	if f.Limit < 1 || f.Limit > maxCityLimit {
		f.Limit = defaultCityLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type CityRepository interface {
	Search(filter CityFilter) ([]model.City, error)
}

type cityRepository struct {
	db     *sqlx.DB
	driver string
}

func NewCityRepository(db *sqlx.DB, driver string) CityRepository {
	return &cityRepository{db: db, driver: driver}
}

// Search runs a single parameterized query over the catalog. Source columns
// are text and frequently blank, so numeric predicates go through a safe cast
// that yields NULL for blank or non-numeric values: a row with an unparseable
// temperature never satisfies a temperature filter, and never errors the query.
func (r *cityRepository) Search(filter CityFilter) ([]model.City, error) {
	filter.normalize()

	query := `SELECT * FROM cities WHERE 1=1`
	args := []any{}

	if filter.MinTemp != nil {
		temp := r.safeNumeric("average_temperature")
		query += " AND " + temp + " IS NOT NULL AND " + temp + " >= ?"
		args = append(args, *filter.MinTemp)
	}

	if filter.MaxTemp != nil {
		temp := r.safeNumeric("average_temperature")
		query += " AND " + temp + " IS NOT NULL AND " + temp + " <= ?"
		args = append(args, *filter.MaxTemp)
	}

	if filter.MaxCost != nil {
		housing := r.safeNumeric("housing")
		food := r.safeNumeric("food")
		query += " AND " + housing + " IS NOT NULL AND " + food + " IS NOT NULL AND (" + housing + " + " + food + ") <= ?"
		args = append(args, *filter.MaxCost)
	}

	if filter.VisaType != nil {
		query += " AND visa_requirements = ?"
		args = append(args, *filter.VisaType)
	}

	// Deterministic ordering: name ascending, id breaks ties.
	query += " ORDER BY name, id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Queryx(r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	cities := []model.City{}
	for rows.Next() {
		raw := map[string]any{}
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scan city row: %w", err)
		}

		city, err := normalizeCityRow(raw)
		if err != nil {
			// Partial-failure tolerance: a malformed row is dropped, the
			// rest of the page still returns.
			slog.Warn("dropping malformed city row", "id", rawString(raw["id"]), "error", err)
			continue
		}
		cities = append(cities, *city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}

	return cities, nil
}

// safeNumeric returns a SQL expression that casts a text column to a float,
// or NULL when the value is blank or not a number. Postgres gets a regex
// guard before the cast. SQLite's CAST coerces any leading digits ('25-30'
// becomes 25.0), so its guard must reject every non-numeric shape: a
// character outside the numeric set, a second dot, a sign after the first
// character, or a digitless string.
func (r *cityRepository) safeNumeric(column string) string {
	if r.driver == "pgx" {
		return "(CASE WHEN trim(" + column + ") ~ '^[+-]?([0-9]+\\.?[0-9]*|\\.[0-9]+)$'" +
			" THEN trim(" + column + ")::double precision ELSE NULL END)"
	}
	return "(CASE WHEN " + column + " IS NULL OR trim(" + column + ") = ''" +
		" OR trim(" + column + ") GLOB '*[^0-9.+-]*'" +
		" OR trim(" + column + ") GLOB '*.*.*'" +
		" OR trim(" + column + ") GLOB '?*[+-]*'" +
		" OR NOT trim(" + column + ") GLOB '*[0-9]*'" +
		" THEN NULL ELSE CAST(" + column + " AS REAL) END)"
}

// cityField maps one source column to its slot in the output shape. The
// parsers enforce the declared target type; coercion never happens ad hoc in
// handlers.
type cityField struct {
	column string
	assign func(city *model.City, raw string) error
}

var cityFields = []cityField{
	{"lat", floatField(func(c *model.City, v *float64) { c.Coordinates.Lat = v })},
	{"lng", floatField(func(c *model.City, v *float64) { c.Coordinates.Lng = v })},
	{"average_temperature", intField(func(c *model.City, v *int) { c.Metrics.Climate.AverageTemperature = v })},
	{"precipitation", intField(func(c *model.City, v *int) { c.Metrics.Climate.Precipitation = v })},
	{"seasons", listField(func(c *model.City, v []string) { c.Metrics.Climate.Seasons = v })},
	{"housing", intField(func(c *model.City, v *int) { c.Metrics.Cost.Housing = v })},
	{"food", intField(func(c *model.City, v *int) { c.Metrics.Cost.Food = v })},
	{"transportation", intField(func(c *model.City, v *int) { c.Metrics.Cost.Transportation = v })},
	{"entertainment", intField(func(c *model.City, v *int) { c.Metrics.Cost.Entertainment = v })},
	{"cost_of_living_index", intField(func(c *model.City, v *int) { c.Metrics.Cost.CostOfLivingIndex = v })},
	{"average_wifi_speed", intField(func(c *model.City, v *int) { c.Metrics.Infrastructure.AverageWifiSpeed = v })},
	{"coworking_spaces", intField(func(c *model.City, v *int) { c.Metrics.Infrastructure.CoworkingSpaces = v })},
	{"healthcare_index", intField(func(c *model.City, v *int) { c.Metrics.QualityOfLife.HealthcareIndex = v })},
	{"safety_index", intField(func(c *model.City, v *int) { c.Metrics.QualityOfLife.SafetyIndex = v })},
	{"pollution_index", intField(func(c *model.City, v *int) { c.Metrics.QualityOfLife.PollutionIndex = v })},
	{"community_size", intField(func(c *model.City, v *int) { c.Metrics.DigitalNomad.CommunitySize = v })},
	{"monthly_meetups", intField(func(c *model.City, v *int) { c.Metrics.DigitalNomad.MonthlyMeetups = v })},
	{"visa_requirements", stringField(func(c *model.City, v *string) { c.Metrics.DigitalNomad.VisaRequirements = v })},
}

// normalizeCityRow coerces an untyped key/value row into the strict City
// shape. Blank or NULL values become nil fields; non-blank values that fail
// to parse make the whole row fail, which callers treat as a drop.
func normalizeCityRow(raw map[string]any) (*model.City, error) {
	city := &model.City{
		ID:      rawString(raw["id"]),
		Name:    rawString(raw["name"]),
		Country: rawString(raw["country"]),
	}
	if city.ID == "" {
		return nil, fmt.Errorf("missing id")
	}

	for _, field := range cityFields {
		if err := field.assign(city, rawString(raw[field.column])); err != nil {
			return nil, fmt.Errorf("%s: %w", field.column, err)
		}
	}

	return city, nil
}

// rawString flattens driver-specific scan values to a plain string.
func rawString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

func floatField(set func(*model.City, *float64)) func(*model.City, string) error {
	return func(c *model.City, raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			set(c, nil)
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parse float %q", raw)
		}
		set(c, &v)
		return nil
	}
}

// intField parses as floating-point first, then truncates with an explicit
// integer conversion. Source values like "27.5" are valid integers here.
func intField(set func(*model.City, *int)) func(*model.City, string) error {
	return func(c *model.City, raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			set(c, nil)
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parse number %q", raw)
		}
		n := int(v)
		set(c, &n)
		return nil
	}
}

// listField splits a comma-space delimited string, empty list if absent.
func listField(set func(*model.City, []string)) func(*model.City, string) error {
	return func(c *model.City, raw string) error {
		if strings.TrimSpace(raw) == "" {
			set(c, []string{})
			return nil
		}
		set(c, strings.Split(raw, ", "))
		return nil
	}
}

func stringField(set func(*model.City, *string)) func(*model.City, string) error {
	return func(c *model.City, raw string) error {
		if strings.TrimSpace(raw) == "" {
			set(c, nil)
			return nil
		}
		set(c, &raw)
		return nil
	}
}
