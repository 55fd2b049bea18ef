package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nomadatlas/nomadatlas/internal/ctxkeys"
	"github.com/nomadatlas/nomadatlas/internal/repository"
	"github.com/nomadatlas/nomadatlas/internal/service"
)

// AuthMiddleware checks for a bearer token and adds the user to the request
// context if the token is valid. Routes stay public unless RequireAuth gates
// them.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				// No token, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			email, err := authService.VerifyJWT(token)
			if err != nil {
				// Invalid token, continue without auth; protected routes 401
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByEmail(email)
			if err != nil {
				// Only a vanished subject falls through to unauthenticated.
				// A failing user store is a server fault, not a bad token.
				if errors.Is(err, repository.ErrUserNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				slog.Error("auth user lookup failed", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				return
			}

			// Security: empty out password hash before it enters the context
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request carries a valid bearer token
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Could not validate credentials"})
			return
		}

		next.ServeHTTP(w, r)
	}
}
