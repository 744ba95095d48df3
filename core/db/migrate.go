package db

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateOpts controls a migration run. Steps == 0 applies every pending
// migration; a negative value rolls back that many.
type MigrateOpts struct {
	DSN   string
	Steps int
	Down  bool
}

// Migrate applies the embedded schema migrations.
func Migrate(opts MigrateOpts) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("creating iofs source: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, pgx5URL(opts.DSN))
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("reading migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix it manually before migrating", version)
	}
	slog.Info("migrator ready", "version", version, "steps", opts.Steps, "down", opts.Down)

	switch {
	case opts.Down:
		err = migrator.Down()
	case opts.Steps != 0:
		err = migrator.Steps(opts.Steps)
	default:
		err = migrator.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no migration changes")
			return nil
		}
		return fmt.Errorf("running migrations: %w", err)
	}

	version, _, _ = migrator.Version()
	slog.Info("migrations applied", "version", version)
	return nil
}

// pgx5URL rewrites a postgres:// DSN for the pgx/v5 migrate driver.
func pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
