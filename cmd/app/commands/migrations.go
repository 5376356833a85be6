package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Synnly/gestion-projet-m2-sub003/internal/database"
)

// migrationSource returns the migrations directory for driver and the
// connection string in the form golang-migrate expects.
func migrationSource(driver, connectionString string) (sourceURL, databaseURL string, err error) {
	switch driver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", connectionString, nil
	case database.DriverMySQL:
		return "file://migrations/mysql", "mysql://" + connectionString, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// RunMigrations migrates the audit store for driver. steps == 0 applies every
// pending migration; otherwise steps migrations are applied, or rolled back
// when negative. Having nothing to apply is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string, steps int) error {
	sourceURL, databaseURL, err := migrationSource(driver, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.Int("steps", steps),
	)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("migrations completed successfully", slog.String("version", "none"))
	case err != nil:
		logger.Warn("migrations completed, version unknown", slog.Any("error", err))
	default:
		logger.Info("migrations completed successfully",
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)
	}
	return nil
}
