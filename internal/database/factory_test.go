package database

import (
	"path/filepath"
	"testing"

	"tt-go/internal/config"
)

func TestNewDatabaseFromConfig(t *testing.T) {
	t.Run("memory database is migrated", func(t *testing.T) {
		got, err := NewDatabaseFromConfig(config.DatabaseConfig{Type: "memory"}, "test-instance")
		if err != nil {
			t.Fatalf("NewDatabaseFromConfig() error = %v", err)
		}
		defer got.Close()

		if err := got.CheckMigrations(); err != nil {
			t.Errorf("CheckMigrations() error = %v", err)
		}
	})

	t.Run("sqlite database in data_dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		got, err := NewDatabaseFromConfig(config.DatabaseConfig{Type: "sqlite", DataDir: dir}, "test-instance")
		if err != nil {
			t.Fatalf("NewDatabaseFromConfig() error = %v", err)
		}
		defer got.Close()

		if want := filepath.Join(dir, "test-instance.db"); got.Path() != want {
			t.Errorf("Path() = %q, want %q", got.Path(), want)
		}
		if err := got.CheckMigrations(); err == nil {
			t.Error("CheckMigrations() on a new file database expected error, got nil")
		}
	})

	t.Run("sqlite database without data_dir", func(t *testing.T) {
		got, err := NewDatabaseFromConfig(config.DatabaseConfig{Type: "sqlite"}, "test-instance")
		if err == nil {
			got.Close()
			t.Fatal("NewDatabaseFromConfig() expected error for missing data_dir, got nil")
		}
	})

	t.Run("unknown database type", func(t *testing.T) {
		got, err := NewDatabaseFromConfig(config.DatabaseConfig{Type: "postgres"}, "test-instance")
		if err == nil {
			got.Close()
			t.Fatal("NewDatabaseFromConfig() expected error for unknown type, got nil")
		}
	})
}
