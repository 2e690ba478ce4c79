// Package auth is responsible for handling authentication and authorization logic.
// This file, `service.go`, holds the AuthService: the orchestrator behind the
// register, login and password-change endpoints.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/logging"
)

// TokenIssuer signs tokens for a handle.
type TokenIssuer interface {
	Issue(handle string) (string, time.Time, error)
}

// AuthService provides authentication-related services.
// In Go, dependencies are injected explicitly via the constructor, which is
// analogous to constructor injection in Nest.js services.
type AuthService struct {
	owners        OwnerStore
	hasher        PasswordHasher
	tokens        TokenIssuer
	authenticator *Authenticator
	log           logging.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(owners OwnerStore, hasher PasswordHasher, tokens TokenIssuer, log logging.Logger) *AuthService {
	return &AuthService{
		owners:        owners,
		hasher:        hasher,
		tokens:        tokens,
		authenticator: NewAuthenticator(owners, hasher),
		log:           log,
	}
}

func statusMessage(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// Register validates req, stores a new owner with a hashed password and returns
// a token for it. Nothing is hashed or stored when validation fails.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthenticationResponse, error) {
	log := logging.FromContext(ctx, s.log)
	log.Info(ctx, "register attempt", "handle", req.Email)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	owner, err := s.owners.Create(ctx, &Owner{
		Handle:         req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: hashedPassword,
		Role:           RoleUser,
	})
	if err != nil {
		if apperror.IsConflictError(err) {
			log.Warn(ctx, "register rejected, handle taken", "handle", req.Email)
		}
		return nil, err
	}

	token, _, err := s.tokens.Issue(owner.Handle)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	log.Info(ctx, "owner registered", "handle", owner.Handle, "owner_id", owner.ID)
	return &AuthenticationResponse{
		StatusCode: http.StatusCreated,
		Message:    statusMessage(http.StatusCreated),
		Token:      token,
	}, nil
}

// Login checks the credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthenticationResponse, error) {
	log := logging.FromContext(ctx, s.log)
	log.Info(ctx, "login attempt", "handle", req.Email)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.authenticator.Authenticate(ctx, req.Email, req.Password); err != nil {
		if apperror.IsAuthError(err) {
			log.Warn(ctx, "login failed", "handle", req.Email)
		}
		return nil, err
	}

	owner, err := s.owners.FindByHandle(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFoundError(badCredentialsMessage, nil)
		}
		return nil, err
	}

	token, _, err := s.tokens.Issue(owner.Handle)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &AuthenticationResponse{
		StatusCode: http.StatusOK,
		Message:    statusMessage(http.StatusOK),
		Token:      token,
	}, nil
}

// ChangePassword replaces owner's password. Tokens issued earlier stay valid
// until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, owner *Owner, req NewPasswordRequest) error {
	if owner == nil {
		return apperror.NewAuthError("Authentication required", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}
	if err := s.owners.UpdatePassword(ctx, owner.ID, hashedPassword); err != nil {
		return err
	}

	logging.FromContext(ctx, s.log).Info(ctx, "password changed", "handle", owner.Handle)
	return nil
}
