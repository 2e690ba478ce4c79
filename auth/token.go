package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/config"
)

// CustomClaims embeds jwt.RegisteredClaims.
// The owner's handle travels as the standard `sub` claim; nothing else about the
// owner is put into the token, so a token stays valid across profile edits.
type CustomClaims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
// Verification is a pure function of the key and the token: there is no
// persistence and no revocation list.
type TokenManager struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenManager builds a TokenManager from the auth configuration.
func NewTokenManager(cfg *config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		lifetime: cfg.AccessTokenDuration,
		now:      time.Now,
	}
}

// Issue signs a token whose subject is handle.
func (m *TokenManager) Issue(handle string) (string, time.Time, error) {
	if handle == "" {
		return "", time.Time{}, errors.New("cannot issue a token for an empty handle")
	}

	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.lifetime)
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   handle,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ID:        uuid.NewString(),
		},
	}

	// Create a new token object with the specified signing method (HS256) and claims.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify checks the signature, signing method, issuer and time claims of
// tokenString and returns the handle it was issued for. Every failure is an
// apperror AuthError.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &CustomClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperror.NewAuthError("Token has expired", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apperror.NewAuthError("Invalid token signature", err)
		default:
			return "", apperror.NewAuthError("Invalid token", err)
		}
	}
	if !token.Valid {
		return "", apperror.NewAuthError("Invalid token", nil)
	}
	if claims.Subject == "" {
		return "", apperror.NewAuthError("Invalid token: subject claim is missing", nil)
	}
	return claims.Subject, nil
}
