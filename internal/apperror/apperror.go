// Package apperror defines the domain error taxonomy shared by every layer.
//
// The repository layer translates storage conditions (sql.ErrNoRows, zero rows
// affected) into these errors; the action layer decides what the user sees;
// the HTTP layer maps them to status codes. Callers check categories with
// errors.Is and extract details with errors.As — never by string matching.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error categories this app distinguishes:
// a missing entity, a rejected input, a rejected sign-in. Everything
// else stays a plain wrapped error and is never shown verbatim.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a category sentinel plus a human-readable message and,
// for validation errors, the offending field name.
type AppError struct {
	Err     error  // category sentinel, reachable via errors.Is
	Message string // human-readable error message
	Field   string // optional: form field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that an entity does not exist.
// The repository raises this for absent rows; handlers map it to 404.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports a rejected input value on a named form field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized reports a request that requires a signed-in user.
// Handlers map this to a redirect to the login page.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
