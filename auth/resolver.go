package auth

import (
	"context"
)

// TokenVerifier turns a bearer token into the handle it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Resolver maps a bearer token to the Owner it names. It fails closed: any
// verification problem is an AuthError, and a handle whose owner no longer
// exists is a NotFoundError.
type Resolver struct {
	tokens TokenVerifier
	owners OwnerStore
}

// NewResolver creates a Resolver.
func NewResolver(tokens TokenVerifier, owners OwnerStore) *Resolver {
	return &Resolver{tokens: tokens, owners: owners}
}

// Resolve verifies token and loads its owner.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Owner, error) {
	handle, err := r.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return r.owners.FindByHandle(ctx, handle)
}
