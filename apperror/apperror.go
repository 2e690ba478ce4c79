// Package apperror defines a centralized system for application-specific errors.
// Every handler in the application reports failures through an *AppError so that
// clients always receive the same JSON envelope: message, numeric status and timestamp.
// It's similar in concept to Nest.js's Exception Filters, where you can catch specific
// error types and customize the HTTP response.
package apperror

import (
	"errors"
	"fmt"
	// `net/http` is used for HTTP status codes.
	"net/http"
	"time"
)

// ErrorType is an enumeration (using `iota`) for different categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (invalid credentials, bad or expired token)
	AuthError
	// UnauthorizedError represents an authorization error (authenticated, but not allowed)
	UnauthorizedError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g., resource already exists
	ConflictError
	// TooManyRequestsError is returned when an admission gate rejects a call
	TooManyRequestsError
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"Email is required"`
}

// AppError is a custom error type for the application.
// It allows wrapping an underlying error (`Err`) for more detailed debugging while
// only `Message` (and `Fields`, for validation failures) is ever shown to clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
	Fields  []FieldError
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so `errors.Is` and `errors.As` can inspect the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	case AuthError:
		// 401: no token, bad token, or wrong credentials.
		return http.StatusUnauthorized
	case UnauthorizedError:
		// 403: the caller is known but is not allowed to do this.
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case TooManyRequestsError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is a generic constructor.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// Constructor functions for specific error types.
// `NewDatabaseError("message", err)` reads better than `NewAppError(DatabaseError, "message", err)`.

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (for authorization issues)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError carrying the offending fields.
// The message of the first field error becomes the top-level message.
func NewValidationError(message string, fields ...FieldError) *AppError {
	if message == "" && len(fields) > 0 {
		message = fields[0].Message
	}
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Fields:  fields,
	}
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewTooManyRequestsError creates a new TooManyRequestsError
func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(TooManyRequestsError, message, nil)
}

// ErrorResponse is the uniform error envelope returned to API clients.
type ErrorResponse struct {
	Message   string       `json:"message" example:"Recipe with id 7 not found"`
	Status    int          `json:"status" example:"404"`
	Timestamp time.Time    `json:"timestamp" example:"2024-05-01T10:00:00Z"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// now is swapped in tests.
var now = time.Now

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Only the user-facing `Message` is included, never the underlying `Err` details.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Message:   e.Message,
		Status:    e.StatusCode(),
		Timestamp: now().UTC(),
		Errors:    e.Fields,
	}
}

// FromError attempts to convert a generic error to an *AppError, looking through wraps.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Helper functions to check error types.
// These use `errors.As`, so they also work when an *AppError has been wrapped with `%w`.

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool { return isType(err, NotFoundError) }

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool { return isType(err, AuthError) }

// IsUnauthorizedError checks if an error is an UnauthorizedError (authorization problem)
func IsUnauthorizedError(err error) bool { return isType(err, UnauthorizedError) }

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool { return isType(err, ValidationError) }

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool { return isType(err, ConflictError) }

// IsTooManyRequests checks if an error is a TooManyRequests error
func IsTooManyRequests(err error) bool { return isType(err, TooManyRequestsError) }
