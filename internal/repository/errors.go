package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row in the requested
	// scope, or when a bulk operation references an id that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a unique constraint
	// (charge point name, connector EVSE number).
	ErrDuplicate = errors.New("duplicate value")
)
