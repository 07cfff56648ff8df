// Copyright (c) 2026 Dugout. All rights reserved.

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// The server applies pending migrations on boot when AUTO_MIGRATE is set;
// the "dugout migrate" command exposes the same operations to operators.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner owns a configured migrator for one database and migrations directory.
type Runner struct {
	dsn    string
	path   string
	logger *slog.Logger
}

// NewRunner creates a Runner. Nothing is opened until an operation runs.
func NewRunner(dsn, migrationsPath string, logger *slog.Logger) *Runner {
	return &Runner{dsn: dsn, path: migrationsPath, logger: logger}
}

// RunUp applies all pending UP migrations.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	return NewRunner(dsn, migrationsPath, logger).Up()
}

// Up applies all pending migrations.
func (r *Runner) Up() error {
	return r.with(func(migrator *migrate.Migrate) error {
		currentVersion, err := r.checkClean(migrator)
		if err != nil {
			return err
		}

		r.logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				r.logger.Info("migration_already_up_to_date")
				return nil
			}
			return fmt.Errorf("migration: up failed: %w", err)
		}

		newVersion, _, _ := migrator.Version()
		r.logger.Info("migration_successful",
			slog.Int("from_version", int(currentVersion)),
			slog.Int("to_version", int(newVersion)),
		)
		return nil
	})
}

// Down rolls back the given number of migrations. Steps must be positive.
func (r *Runner) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("migration: down requires a positive step count, got %d", steps)
	}

	return r.with(func(migrator *migrate.Migrate) error {
		if _, err := r.checkClean(migrator); err != nil {
			return err
		}
		if err := migrator.Steps(-steps); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				return nil
			}
			return fmt.Errorf("migration: down failed: %w", err)
		}
		r.logger.Info("migration_rolled_back", slog.Int("steps", steps))
		return nil
	})
}

// Version reports the applied schema version. A fresh database reports 0.
func (r *Runner) Version() (version uint, dirty bool, err error) {
	err = r.with(func(migrator *migrate.Migrate) error {
		version, dirty, err = migrator.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			version, dirty, err = 0, false, nil
		}
		return err
	})
	return version, dirty, err
}

func (r *Runner) checkClean(migrator *migrate.Migrate) (uint, error) {
	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return currentVersion, fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}
	return currentVersion, nil
}

func (r *Runner) with(fn func(*migrate.Migrate) error) error {
	migrator, err := migrate.New("file://"+r.path, convertToPgx5DSN(r.dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			r.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			r.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: r.logger}
	return fn(migrator)
}

// convertToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
