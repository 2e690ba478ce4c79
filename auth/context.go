// Package auth, as part of the authentication module.
// This file, `context.go`, deals with carrying the resolved Owner through the
// request's `context.Context`. Handlers downstream of JWTMiddleware read the
// owner from here and never from request input.
package auth

import (
	"context"
	"net/http"

	"github.com/user/recipefinder-go/apperror"
)

// `contextKey` is a custom type for context keys. Using a custom type prevents collisions
// with context keys defined in other packages. It's a common Go idiom.
type contextKey string

const ownerContextKey contextKey = "auth_owner"

// NewContextWithOwner returns a child context carrying owner.
func NewContextWithOwner(ctx context.Context, owner *Owner) context.Context {
	return context.WithValue(ctx, ownerContextKey, owner)
}

// OwnerFromContext extracts the Owner stored by JWTMiddleware.
func OwnerFromContext(ctx context.Context) (*Owner, bool) {
	owner, ok := ctx.Value(ownerContextKey).(*Owner)
	return owner, ok && owner != nil
}

// CurrentOwner is OwnerFromContext for handlers: a missing owner means the
// route was wired without JWTMiddleware, which is reported as an AuthError.
func CurrentOwner(ctx context.Context) (*Owner, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, apperror.NewAuthError("Authentication required", nil)
	}
	return owner, nil
}

// RequireRole returns middleware that only lets owners carrying one of roles through.
// It must run after JWTMiddleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, err := CurrentOwner(r.Context())
			if err != nil {
				apperror.WriteError(w, r, err)
				return
			}
			for _, role := range roles {
				if owner.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			apperror.WriteError(w, r, apperror.NewUnauthorizedError("Access denied", nil))
		})
	}
}
