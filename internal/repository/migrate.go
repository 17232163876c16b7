package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // postgres driver for the migrator
	"github.com/nikolayk812/gomarket-cart/internal/migrations"
)

func RunMigrations(dsn string, logger *slog.Logger) (retErr error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("conn.Close: %w", closeErr))
		}
	}()

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return errors.Join(fmt.Errorf("postgres.WithInstance: %w", err), source.Close())
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errors.Join(fmt.Errorf("migrate.NewWithInstance: %w", err), source.Close(), driver.Close())
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("m.Close: %w", errors.Join(sourceErr, dbErr)))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("m.Version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration version[%d] is dirty", version)
	}

	logger.Info("migrations applied", "version", version)
	return nil
}
