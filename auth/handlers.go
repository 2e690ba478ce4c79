// Package auth, as part of the authentication module.
// This file, `handlers.go`, is responsible for handling HTTP requests related to authentication.
// It acts as the "Controller" layer, analogous to a Controller class in Nest.js (e.g., `AuthController`).
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/logging"
	"github.com/user/recipefinder-go/ratelimit"
)

// PasswordUpdatedMessage is the body returned by a successful password change.
const PasswordUpdatedMessage = "Password updated"

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the auth endpoints on r. Register and login are guarded
// by their own gates; the password change runs behind authentication first, so
// only authenticated attempts consume the credential-change gate.
func (h *Handlers) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler, gates *ratelimit.Gates, log logging.Logger) {
	r.Route("/auth", func(r chi.Router) {
		r.With(ratelimit.Guard(gates.Register, log)).Post("/register", h.HandleRegister())
		r.With(ratelimit.Guard(gates.Login, log)).Post("/login", h.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", h.HandleMe())
			r.With(ratelimit.Guard(gates.CredentialChange, log)).Post("/password", h.HandleChangePassword())
		})
	})
}

// The `godoc` comments (like `@Summary`, `@Tags`, etc.) are annotations used by
// `swaggo/swag` to generate OpenAPI/Swagger documentation.

// HandleRegister godoc
// @Summary Owner registration
// @Description Registers a new owner and returns a bearer token for it.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.AuthenticationResponse "Owner created, token provided"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 409 {object} apperror.ErrorResponse "Conflict - Email already registered"
// @Failure 429 {object} apperror.ErrorResponse "Too Many Requests"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary Owner login
// @Description Checks the credentials and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.AuthenticationResponse "Login successful, token provided"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 429 {object} apperror.ErrorResponse "Too Many Requests"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleMe godoc
// @Summary Current owner
// @Description Returns the owner the bearer token resolves to.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Owner
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - Owner no longer exists"
// @Router /auth/me [get]
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, owner)
	}
}

// HandleChangePassword godoc
// @Summary Change password
// @Description Replaces the current owner's password.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwordBody body auth.NewPasswordRequest true "New password"
// @Success 200 {string} string "Password updated"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Blank password"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 429 {object} apperror.ErrorResponse "Too Many Requests"
// @Router /auth/password [post]
func (h *Handlers) HandleChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		owner, err := CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		var req NewPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}

		if err := h.service.ChangePassword(r.Context(), owner, req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, PasswordUpdatedMessage)
	}
}
