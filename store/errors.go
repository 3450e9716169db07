package store

import "errors"

// Error kinds raised at the component boundary. Handlers map them to HTTP
// statuses with errors.Is; the store never translates or swallows them.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing entity. It never distinguishes
	// "never existed" from "was deleted".
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing or invalid credential. All credential
	// failure modes collapse into it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated actor without permission on an
	// otherwise valid target.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a violated state-machine guard or uniqueness rule.
	ErrConflict = errors.New("conflict")
)
