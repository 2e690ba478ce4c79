// Package users, as part of the owner profile module.
// This file, `service.go`, contains the business logic for profile operations.
// It acts as the "Service" layer, analogous to a Service class in Nest.js.
package users

import (
	"context"

	"github.com/user/recipefinder-go/auth"
)

// UserService reads owner profiles. Owners are only ever changed through
// registration and the password change in package auth.
type UserService struct {
	owners auth.OwnerStore
}

// NewUserService creates a new UserService.
func NewUserService(owners auth.OwnerStore) *UserService {
	return &UserService{owners: owners}
}

// GetProfile retrieves an owner's profile by id.
func (s *UserService) GetProfile(ctx context.Context, ownerID int64) (*ProfileResponse, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return profileFromOwner(owner), nil
}
