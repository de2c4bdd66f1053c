package database

import (
	"fmt"
	"os"
	"path/filepath"

	"tt-go/internal/config"
)

// NewDatabaseFromConfig opens the database selected by the config type.
// A memory database is migrated on open since it starts empty every time.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, instanceID string) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		return NewSQLiteDatabase(filepath.Join(cfg.DataDir, instanceID+".db"))
	case "memory":
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating memory database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
