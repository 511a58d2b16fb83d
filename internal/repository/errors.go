package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entry doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrMalformedData is returned when a persisted document fails to parse
	ErrMalformedData = errors.New("malformed data")
)
