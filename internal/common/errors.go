// Package common defines shared constants and sentinel errors used across
// the BlueCup server, its HTTP layer and the operator CLI. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")

	// Validation errors. ErrValidation is usually wrapped with the offending
	// field, e.g. fmt.Errorf("%w: hours must be a number", ErrValidation).
	ErrValidation = errors.New("validation error")

	// ErrDuplicateEmail is returned when the store rejects a second account
	// with the same email.
	ErrDuplicateEmail = errors.New("email already registered")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
