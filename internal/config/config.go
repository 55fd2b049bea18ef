package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Run embedded migrations at startup. Turn off when the deploy
	// pipeline runs them as a separate release step.
	DBAutoMigrate bool

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Demo bootstrap account. Login with exactly this email and password
	// auto-provisions the account on first use. Leave both empty to disable
	// (recommended for production).
	DemoEmail    string
	DemoPassword string

	// City catalog fallback dataset. Empty means the embedded copy.
	CitiesPath string

	// Email
	EmailFrom    string
	ResendAPIKey string

	// CORS
	AllowedOrigin string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "NomadAtlas"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8000"),

		// Database
		DBDriver:      envString("DB_DRIVER", "sqlite"),
		DBConnection:  envString("DB_CONNECTION", "./data/nomadatlas.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),
		DBAutoMigrate: envBool("DB_AUTO_MIGRATE", true),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 30*time.Minute),

		// Demo bootstrap
		DemoEmail:    envString("DEMO_EMAIL", ""),
		DemoPassword: envString("DEMO_PASSWORD", ""),

		// City catalog
		CitiesPath: envString("CITIES_PATH", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "hello@nomadatlas.app"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// CORS
		AllowedOrigin: envString("ALLOWED_ORIGIN", "*"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures required services are configured and the demo
// bootstrap account is not left enabled by accident.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.DemoEmail != "" || cfg.DemoPassword != "" {
		slog.Warn("demo bootstrap account is enabled in production", "email", cfg.DemoEmail)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DemoBootstrapEnabled reports whether the one-time demo account provisioning
// path is active. Both the email and password must be configured.
func (c *Config) DemoBootstrapEnabled() bool {
	return c.DemoEmail != "" && c.DemoPassword != ""
}
