// Package auth, as previously noted, handles authentication.
// This file, `models.go`, defines the Owner: the account that holds a private
// collection of recipes.
package auth

import "time"

// Owner represents a registered account.
// `json:"-"` on HashedPassword keeps the hash out of every API response.
type Owner struct {
	ID int64 `json:"id" example:"1"`
	// Handle is the unique login key. It is the e-mail address the owner
	// registered with and is compared case-sensitively.
	Handle         string    `json:"email" example:"cook@example.com"`
	FirstName      string    `json:"first_name" example:"Julia"`
	LastName       string    `json:"last_name" example:"Child"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role" example:"ROLE_USER"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasRole reports whether the owner carries role.
func (o *Owner) HasRole(role string) bool {
	return o != nil && o.Role == role
}
