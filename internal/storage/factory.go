package storage

import (
	"context"
	"fmt"

	"tt-go/internal/config"
	"tt-go/internal/tt"
)

// NewStoreFromConfig creates the ObjectStore named by cfg.Type, wrapped for
// encryption when cfg.Encrypt is set.
func NewStoreFromConfig(ctx context.Context, cfg config.StorageConfig, enc tt.Encryptor) (tt.ObjectStore, error) {
	var store tt.ObjectStore
	switch cfg.Type {
	case "memory":
		store = NewMemoryStore()
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires fs_root to be set")
		}
		fsStore, err := NewFileSystemStore(cfg.FSRoot, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		store = fsStore
	case "s3":
		s3Store, err := NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		store = s3Store
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}

	if cfg.Encrypt {
		if enc == nil {
			return nil, fmt.Errorf("storage.encrypt is set but no encryptor is configured")
		}
		store = NewEncryptedStore(store, enc)
	}
	return store, nil
}
