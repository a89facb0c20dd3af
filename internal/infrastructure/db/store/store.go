// Package store defines the record store protocol shared by every backend:
// table selection, projection, relation embedding, filters, ordering, range
// pagination, insert, update and delete. Each call maps to a single request
// against the backing datastore.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Row is one record keyed by column name. Embedded relations appear as nested
// Row values under their alias.
type Row map[string]any

var (
	// ErrNoRows is returned by Single when a query matched nothing.
	ErrNoRows = errors.New("store: no rows in result set")
	// ErrMultipleRows is returned by Single when a query matched more than one row.
	ErrMultipleRows = errors.New("store: multiple rows in result set")
	// ErrConstraint marks uniqueness, foreign key, check and not-null violations.
	ErrConstraint = errors.New("store: constraint violation")
)

// Error is the failure descriptor returned by every backend.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err, otherwise an *Error describing op on table.
func Wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Table: table, Err: err}
}

// Client is the binding to a remote datastore. Implementations must be safe
// for concurrent use; one client is shared by every repository.
type Client interface {
	// Insert stores one row and returns it as persisted, including the
	// store-generated id and created_at.
	Insert(ctx context.Context, table string, row Row) (Row, error)
	// Select returns the rows matching q.
	Select(ctx context.Context, q Query) ([]Row, error)
	// Update applies patch to every row matching filters and returns the
	// updated rows.
	Update(ctx context.Context, table string, filters []Filter, patch Row) ([]Row, error)
	// Delete removes every row matching filters and returns them.
	Delete(ctx context.Context, table string, filters []Filter) ([]Row, error)
	// Ping reports whether the datastore is reachable.
	Ping(ctx context.Context) error
}

// Single enforces a one-row expectation on a result set.
func Single(rows []Row) (Row, error) {
	switch len(rows) {
	case 0:
		return nil, ErrNoRows
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrMultipleRows, len(rows))
	}
}
