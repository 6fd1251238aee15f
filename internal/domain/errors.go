package domain

import "errors"

var (
	// ErrNotFound is returned when a row does not exist for the caller.
	ErrNotFound = errors.New("not found")
	// ErrEmptyPatch is returned when an update supplies zero fields. The
	// API maps it to the same 404 as ErrNotFound, matching the wire
	// contract, but callers inside the process can tell the two apart.
	ErrEmptyPatch = errors.New("no fields supplied")
	// ErrValidation wraps missing or malformed required fields.
	ErrValidation = errors.New("validation failed")
)
