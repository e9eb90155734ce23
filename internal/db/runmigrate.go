package db

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultMigrationsDir is where the SQL migrations live relative to the working directory.
const DefaultMigrationsDir = "migrations"

// RunSQLMigrations applies dir/*.sql to the postgres database at url.
// ErrNoChange is not an error.
func RunSQLMigrations(url, dir string) error {
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	m, err := migrate.New("file://"+dir, url)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
