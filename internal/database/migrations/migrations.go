package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var migrationFiles embed.FS

// Status describes where a database stands relative to the embedded migrations.
type Status struct {
	// Version is the applied version; zero when nothing has been applied.
	Version uint
	Latest  uint
	Dirty   bool
}

// Current reports whether the database is exactly at the latest version.
func (s Status) Current() bool {
	return !s.Dirty && s.Version == s.Latest
}

func (s Status) String() string {
	switch {
	case s.Dirty:
		return fmt.Sprintf("version %d (dirty), latest %d", s.Version, s.Latest)
	case s.Version == 0:
		return fmt.Sprintf("no schema version, latest %d", s.Latest)
	default:
		return fmt.Sprintf("version %d, latest %d", s.Version, s.Latest)
	}
}

// ReadStatus returns the applied and latest schema versions of db.
func ReadStatus(db *sql.DB) (Status, error) {
	m, err := newMigrate(db)
	if err != nil {
		return Status{}, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// m is not closed: that would close db, which the caller owns.

	latest, err := latestVersion()
	if err != nil {
		return Status{}, fmt.Errorf("failed to determine latest version: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, fmt.Errorf("failed to get database version: %w", err)
	}
	return Status{Version: version, Latest: latest, Dirty: dirty}, nil
}

// CheckDBMigrationStatus returns nil if the database is at the latest version
// and an error describing the mismatch otherwise.
func CheckDBMigrationStatus(db *sql.DB) error {
	st, err := ReadStatus(db)
	if err != nil {
		return err
	}

	switch {
	case st.Dirty:
		return fmt.Errorf("database is in dirty state at version %d (migration failed previously)", st.Version)
	case st.Version == 0:
		return fmt.Errorf("database has no schema version (needs migration)")
	case st.Version < st.Latest:
		return fmt.Errorf("database is at version %d but latest is %d (%d migrations behind)",
			st.Version, st.Latest, st.Latest-st.Version)
	case st.Version > st.Latest:
		return fmt.Errorf("database version %d is ahead of binary version %d (binary needs update)",
			st.Version, st.Latest)
	}
	return nil
}

// MigrateUp applies all pending migrations. An up-to-date database is not an error.
func MigrateUp(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationFiles, "files")
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	dbDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		sourceDriver.Close()
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	if err != nil {
		sourceDriver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func latestVersion() (uint, error) {
	src, err := iofs.New(migrationFiles, "files")
	if err != nil {
		return 0, fmt.Errorf("failed to read migration files: %w", err)
	}
	defer src.Close()
	return lastVersion(src)
}

// lastVersion walks the source to its final migration.
func lastVersion(src source.Driver) (uint, error) {
	version, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(version)
		if err != nil {
			return version, nil
		}
		version = next
	}
}
