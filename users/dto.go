// Package users, as part of the owner profile module.
// This file, `dto.go`, defines Data Transfer Objects (DTOs) for the users module.
// DTOs are simple objects used to transfer data between layers, especially between
// handlers (controllers) and services, and for API request/response bodies.
package users

import (
	"time"

	"github.com/user/recipefinder-go/auth"
)

// ProfileResponse represents the data returned for an owner profile.
// @Description Owner profile information
type ProfileResponse struct {
	// example: 1
	ID int64 `json:"id"`
	// example: "cook@example.com"
	Email string `json:"email"`
	// example: "Julia"
	FirstName string `json:"first_name"`
	// example: "Child"
	LastName string `json:"last_name"`
	// example: "ROLE_USER"
	Role string `json:"role"`
	// example: "2024-05-01T10:00:00Z"
	CreatedAt time.Time `json:"created_at"`
}

func profileFromOwner(o *auth.Owner) *ProfileResponse {
	return &ProfileResponse{
		ID:        o.ID,
		Email:     o.Handle,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Role:      o.Role,
		CreatedAt: o.CreatedAt,
	}
}
