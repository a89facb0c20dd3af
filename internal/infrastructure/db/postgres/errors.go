package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// mapError converts integrity violations into store.ErrConstraint, keeping the
// server message and constraint name for the logs. Anything else is returned
// unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode, foreignKeyViolationCode, checkViolationCode:
		return fmt.Errorf("%w: %s (%s)", store.ErrConstraint, pgErr.Message, pgErr.ConstraintName)
	case notNullViolationCode:
		return fmt.Errorf("%w: %s (%s)", store.ErrConstraint, pgErr.Message, pgErr.ColumnName)
	}
	return err
}
