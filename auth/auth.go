// Package auth is responsible for owner identity: registering owners, checking
// their credentials, issuing and verifying bearer tokens (JWT), and resolving the
// token on each request back into the Owner that every recipe operation is scoped to.
//
// In a Nest.js analogy, this directory would correspond to an "AuthModule"
// containing the service, the controller (handlers in Go), DTOs, a guard
// (JWTMiddleware) and the repository for owners.
package auth

// Roles carried by owners. Every registered owner gets RoleUser.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"
