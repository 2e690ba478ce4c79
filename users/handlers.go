// Package users encapsulates the owner profile endpoints.
// This file, `handlers.go`, is responsible for handling HTTP requests related to profiles.
// It acts as the "Controller" layer in an MVC or similar architectural pattern.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/auth"
)

// UserHandlers provides HTTP handlers for profile management.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the read-only /users/me behind authMiddleware.
func (h *UserHandlers) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.HandleGetProfile())
	})
}

// HandleGetProfile godoc
// @Summary Get current owner's profile
// @Description Retrieves the profile information for the currently authenticated owner.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse "Successfully retrieved profile"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - Owner not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [get]
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := auth.CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		profile, err := h.service.GetProfile(r.Context(), owner.ID)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, profile)
	}
}
