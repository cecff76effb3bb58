// Package common defines the sentinel errors shared across the backend.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrStorage wraps any unexpected backend failure. Repositories are the
	// last layer allowed to look at driver-specific error shapes; everything
	// above sees this value in the chain.
	ErrStorage = errors.New("storage failure")

	// Service-level errors.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
