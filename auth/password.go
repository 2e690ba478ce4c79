package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/recipefinder-go/apperror"
)

// badCredentialsMessage is deliberately the same for an unknown handle and a
// wrong password.
const badCredentialsMessage = "Invalid email or password"

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher implements PasswordHasher with golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare returns nil when password matches hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Authenticator checks a handle/password pair against the OwnerStore.
type Authenticator struct {
	owners OwnerStore
	hasher PasswordHasher
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(owners OwnerStore, hasher PasswordHasher) *Authenticator {
	return &Authenticator{owners: owners, hasher: hasher}
}

// Authenticate returns nil if the handle exists and the password matches.
// Unknown handles and wrong passwords both yield the same AuthError.
func (a *Authenticator) Authenticate(ctx context.Context, handle, password string) error {
	owner, err := a.owners.FindByHandle(ctx, handle)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewAuthError(badCredentialsMessage, nil)
		}
		return err
	}

	if err := a.hasher.Compare(owner.HashedPassword, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperror.NewAuthError(badCredentialsMessage, nil)
		}
		return apperror.NewAuthError(badCredentialsMessage, err)
	}
	return nil
}
