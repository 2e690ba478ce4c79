// Package server assembles the HTTP side of the application: the chi router with
// its global middleware, the feature routes under /api/v1, and the http.Server
// lifecycle with graceful shutdown.
//
// Analogy to Nest.js: NewRouter plays the part of the root AppModule plus the
// global middleware registered in `main.ts`.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/auth"
	"github.com/user/recipefinder-go/config"
	"github.com/user/recipefinder-go/logging"
	"github.com/user/recipefinder-go/ratelimit"
	"github.com/user/recipefinder-go/recipes"
	"github.com/user/recipefinder-go/users"
)

// APIPrefix is where every feature route is mounted.
const APIPrefix = "/api/v1"

// Deps holds everything the router needs. Stores are interfaces so the same
// router serves the PostgreSQL and in-memory backends.
type Deps struct {
	Config  *config.AppConfig
	Logger  logging.Logger
	Owners  auth.OwnerStore
	Recipes recipes.Repository

	// Gates defaults to ratelimit.NewGates(Config.RateLimit).
	Gates  *ratelimit.Gates
	// Health is called by /healthz; nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter wires services, handlers and middleware into one http.Handler.
// This is manual dependency injection, common in Go. Nest.js uses a DI container.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}
	gates := d.Gates
	if gates == nil {
		gates = ratelimit.NewGates(d.Config.RateLimit)
	}

	tokens := auth.NewTokenManager(d.Config.Auth)
	hasher := auth.NewBcryptHasher(d.Config.Auth.BcryptCost)
	authService := auth.NewAuthService(d.Owners, hasher, tokens, log)
	resolver := auth.NewResolver(tokens, d.Owners)
	authMiddleware := auth.JWTMiddleware(resolver, log)

	authHandlers := auth.NewHandlers(authService)
	recipeHandlers := recipes.NewHandlers(recipes.NewRecipeService(d.Recipes, log))
	userHandlers := users.NewUserHandlers(users.NewUserService(d.Owners))

	r := chi.NewRouter()

	// IMPORTANT: Chi requires all middleware to be registered before any routes
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(requestLogger(log))
	r.Use(recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	// `/swagger/doc.json` is served from the docs package registered in main.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/healthz", handleHealth(d.Health, log))

	r.Route(APIPrefix, func(r chi.Router) {
		authHandlers.RegisterRoutes(r, authMiddleware, gates, log)
		recipeHandlers.RegisterRoutes(r, authMiddleware)
		userHandlers.RegisterRoutes(r, authMiddleware)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteError(w, r, apperror.NewNotFoundError("Resource not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteJSON(w, http.StatusMethodNotAllowed, apperror.ErrorResponse{
			Message:   "Method not allowed",
			Status:    http.StatusMethodNotAllowed,
			Timestamp: time.Now().UTC(),
		})
	})

	return r
}

// handleHealth reports 200 {"status":"ok"} or 503 when the check fails.
func handleHealth(check func(ctx context.Context) error, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logging.FromContext(r.Context(), log).Warn(r.Context(), "health check failed", "error", err.Error())
				apperror.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		apperror.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
