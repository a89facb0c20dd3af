package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

const migrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// zerologGooseLogger adapts goose's logger interface to zerolog.
type zerologGooseLogger struct {
	log zerolog.Logger
}

func (l zerologGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

// Fatalf logs at error level and does not exit; the failing goose call
// returns its error to the caller.
func (l zerologGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}

// Migrator applies the embedded schema migrations.
type Migrator struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewMigrator opens a database/sql handle on top of pool for goose.
func NewMigrator(pool *pgxpool.Pool, log zerolog.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(zerologGooseLogger{log: log})
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	return &Migrator{db: stdlib.OpenDBFromPool(pool), log: log}, nil
}

// Run executes one goose command: up, down, status, reset or version.
func (m *Migrator) Run(ctx context.Context, command string) error {
	m.log.Info().Str("command", command).Msg("Running migrations")

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, m.db, "migrations")
	case "down":
		err = goose.DownContext(ctx, m.db, "migrations")
	case "status":
		err = goose.StatusContext(ctx, m.db, "migrations")
	case "reset":
		err = goose.ResetContext(ctx, m.db, "migrations")
	case "version":
		err = goose.VersionContext(ctx, m.db, "migrations")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

// Close releases the database/sql handle. The underlying pool stays open.
func (m *Migrator) Close() error {
	return m.db.Close()
}
