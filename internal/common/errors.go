// Package common defines shared constants and sentinel errors used across
// the banksim components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrDataIntegrity marks stored records that contradict invariants the
	// schema is supposed to guarantee (hash width mismatch, credential row
	// missing for a live session). Never mapped to a login failure.
	ErrDataIntegrity = errors.New("data integrity error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
