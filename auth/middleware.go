// Package auth, as part of the authentication module.
// This file, `middleware.go`, defines HTTP middleware related to authentication.
// Middleware are functions that process HTTP requests before they reach the main handler.
// This is analogous to a Nest.js Guard that implements `CanActivate`.
package auth

import (
	"net/http"
	"strings"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/logging"
)

// JWTMiddleware resolves the bearer token on each request and stores the Owner
// in the request context. Requests without a resolvable owner never reach next.
func JWTMiddleware(resolver *Resolver, log logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				apperror.WriteError(w, r, err)
				return
			}

			owner, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				logging.FromContext(r.Context(), log).Debug(r.Context(), "bearer token rejected",
					"path", r.URL.Path, "error", err.Error())
				apperror.WriteError(w, r, err)
				return
			}

			ctx := NewContextWithOwner(r.Context(), owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer {token}" header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperror.NewAuthError("Authorization header is missing", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.NewAuthError("Authorization header format must be Bearer {token}", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}
