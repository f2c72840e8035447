// Package common defines shared sentinel errors used across the service
// layers of NoteDesk. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session errors (missing, expired or tampered session token).
	ErrNoSession = errors.New("no active session")
)
