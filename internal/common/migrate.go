package common

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies every pending migration. source is relative to the caller,
// e.g. "file://migrations" from the repository root or "file://../../migrations"
// from a package directory.
func Migrate(source, dsn string) (*migrate.Migrate, error) {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return nil, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, err
	}

	return m, nil
}
