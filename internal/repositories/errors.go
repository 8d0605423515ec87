package repositories

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrWriteFailed is returned when an insert or batch insert could not be
	// committed. Batch inserts are all-or-nothing: on failure nothing is kept.
	ErrWriteFailed = errors.New("store write failed")
)
