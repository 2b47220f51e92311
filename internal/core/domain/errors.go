package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoResponse indicates the analysis provider returned no usable
	// payload for an image.
	ErrNoResponse = errors.New("no analysis response")

	// ErrSchemaViolation indicates an analysis payload failed JSON
	// Schema validation.
	ErrSchemaViolation = errors.New("analysis payload violates schema")

	// ErrCacheVersion indicates a cache row was written by an
	// incompatible schema version and was ignored.
	ErrCacheVersion = errors.New("cache entry version mismatch")
)
