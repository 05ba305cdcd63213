package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Runner applies database schema migrations
type Runner struct {
	sourceURL   string
	databaseURL string
	logger      *zap.Logger
}

// NewRunner creates a migration runner. sourcePath is the directory
// holding the numbered .sql files.
func NewRunner(sourcePath, databaseURL string, logger *zap.Logger) *Runner {
	return &Runner{
		sourceURL:   "file://" + sourcePath,
		databaseURL: databaseURL,
		logger:      logger,
	}
}

// Up applies all pending migrations
func (r *Runner) Up() error {
	m, err := migrate.New(r.sourceURL, r.databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("database schema is up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	r.logger.Info("migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// Down rolls back the most recent migration
func (r *Runner) Down() error {
	m, err := migrate.New(r.sourceURL, r.databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	r.logger.Info("rolled back one migration")
	return nil
}
