package routes

import (
	"net/http"

	"github.com/nomadatlas/nomadatlas/internal/app"
	"github.com/nomadatlas/nomadatlas/internal/handler"
	"github.com/nomadatlas/nomadatlas/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.AuthService, app.UserService)
	city := handler.NewCityHandler(app.CityService)
	plan := handler.NewPlanHandler(app.PlanService)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", handler.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /token", rateLimiter(auth.Token))
	mux.HandleFunc("POST /users/{$}", rateLimiter(user.Create))

	// Profile (bearer token required)
	mux.HandleFunc("GET /profile", middleware.RequireAuth(user.Profile))
	mux.HandleFunc("PUT /profile/preferences", middleware.RequireAuth(user.UpdatePreferences))

	// City catalog (public)
	mux.HandleFunc("GET /cities", city.List)
	mux.HandleFunc("GET /cities/{id}", city.Get)
	mux.HandleFunc("GET /filter_cities", city.Filter)

	// Travel plans (bearer token required)
	mux.HandleFunc("POST /plans", middleware.RequireAuth(plan.Create))
	mux.HandleFunc("GET /plans", middleware.RequireAuth(plan.List))

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.CORS(app.Cfg.AllowedOrigin),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)

	return h
}
