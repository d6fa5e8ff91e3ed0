// Package common defines shared constants and sentinel errors used across
// the layers of the to-do service. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrInternal           = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Auth errors. Expired and forged tokens deliberately collapse into
	// ErrInvalidToken so callers cannot tell the two apart.
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrNoAuthHeader  = errors.New("no authorization header")
	ErrBadAuthHeader = errors.New("invalid authorization header format")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError returns an error carrying a caller-facing message that
// still matches ErrValidation under errors.Is.
func NewValidationError(msg string) error {
	return &validationError{msg: msg}
}
