package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no payload is stored under a key.
	ErrNotFound = errors.New("schema payload not found")
)
