// Package auth provides authentication and authorization functionality
// This file, `dto.go` (Data Transfer Object), defines structures used for
// transferring data in API requests and responses related to authentication.
// These are similar to DTOs in Nest.js, where a validation pipe checks them; here
// each request carries its own Validate method instead.
package auth

import (
	"github.com/user/recipefinder-go/validation"
)

// bcrypt only accepts passwords up to 72 bytes.
const passwordTooLongMessage = "Password must be at most 72 bytes"

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Email     string `json:"email" example:"cook@example.com" validate:"notblank,email"`
	FirstName string `json:"first_name" example:"Julia" validate:"notblank,min=2,max=20,personname"`
	LastName  string `json:"last_name" example:"Child" validate:"notblank,min=2,max=20,personname"`
	Password  string `json:"password" example:"strongpassword123" validate:"notblank,maxbytes=72"`
}

var registerMessages = validation.Messages{
	"email.notblank":        "Email is required",
	"email.email":           "Email should be valid",
	"first_name.notblank":   "First name is required",
	"first_name.min":        "First name should be between 2 and 20 characters",
	"first_name.max":        "First name should be between 2 and 20 characters",
	"first_name.personname": "First name should be valid",
	"last_name.notblank":    "Last name is required",
	"last_name.min":         "Last name should be between 2 and 20 characters",
	"last_name.max":         "Last name should be between 2 and 20 characters",
	"last_name.personname":  "Last name should be valid",
	"password.notblank":     "Password is required",
	"password.maxbytes":     passwordTooLongMessage,
}

// Validate checks every field and reports the failures as field errors.
func (r RegisterRequest) Validate() error {
	return validation.Struct(r, registerMessages)
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" example:"cook@example.com" validate:"notblank"`
	Password string `json:"password" example:"strongpassword123" validate:"notblank"`
}

var loginMessages = validation.Messages{
	"email.notblank":    "Email is required",
	"password.notblank": "Password is required",
}

// Validate checks that both credentials are present.
func (r LoginRequest) Validate() error {
	return validation.Struct(r, loginMessages)
}

// NewPasswordRequest carries the replacement password for the current owner.
type NewPasswordRequest struct {
	Password string `json:"password" example:"evenstrongerpassword456" validate:"notblank,maxbytes=72"`
}

var newPasswordMessages = validation.Messages{
	"password.notblank": "Password is required",
	"password.maxbytes": passwordTooLongMessage,
}

// Validate checks that the new password is not blank and fits bcrypt.
func (r NewPasswordRequest) Validate() error {
	return validation.Struct(r, newPasswordMessages)
}

// AuthenticationResponse is returned by register and login.
type AuthenticationResponse struct {
	StatusCode int    `json:"status_code" example:"201"`
	Message    string `json:"message" example:"201 Created"`
	Token      string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
