package domain

import "errors"

var (
	// ErrNotFound reports that no record matched an id-scoped read, update or delete.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation marks input rejected before it reaches the record store.
	ErrValidation = errors.New("invalid input")
)

// Fields is a set of column values keyed by column name. Create payloads carry
// every writable column; update payloads carry only the columns to change.
type Fields map[string]any
