package encryption

import (
	"fmt"

	"tt-go/internal/config"
	"tt-go/internal/tt"
)

// NewEncryptorFromConfig returns the Encryptor named by cfg.Type.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (tt.Encryptor, error) {
	switch cfg.Type {
	case "age", "":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
