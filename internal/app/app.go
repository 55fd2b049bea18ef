package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nomadatlas/nomadatlas/internal/config"
	"github.com/nomadatlas/nomadatlas/internal/dataset"
	"github.com/nomadatlas/nomadatlas/internal/db"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	UserService  *service.UserService
	CityService  *service.CityService
	PlanService  *service.PlanService
	EmailService *service.EmailService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations unless the deploy pipeline owns them
	if cfg.DBAutoMigrate {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %v", err)
		}
	}

	// Static fallback catalog, loaded once and read-only afterwards
	fallback, err := dataset.Load(cfg.CitiesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback dataset: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	preferenceRepository := repository.NewPreferenceRepository(database)
	cityRepository := repository.NewCityRepository(database, cfg.DBDriver)
	planRepository := repository.NewPlanRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		service.DemoPolicy{
			Email:    cfg.DemoEmail,
			Password: cfg.DemoPassword,
			FullName: "Demo User",
		},
	)
	userService := service.NewUserService(userRepository, preferenceRepository)
	cityService := service.NewCityService(cityRepository, fallback)
	planService := service.NewPlanService(planRepository)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		UserService:  userService,
		CityService:  cityService,
		PlanService:  planService,
		EmailService: emailService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
