package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"tt-go/internal/tt"
)

// EncryptedStore encrypts objects before handing them to the wrapped store.
// Downloads return ciphertext; decrypting needs the operator's private key.
type EncryptedStore struct {
	inner tt.ObjectStore
	enc   tt.Encryptor
}

var _ tt.ObjectStore = (*EncryptedStore)(nil)

// NewEncryptedStore wraps inner with enc.
func NewEncryptedStore(inner tt.ObjectStore, enc tt.Encryptor) *EncryptedStore {
	return &EncryptedStore{inner: inner, enc: enc}
}

// Upload buffers the ciphertext so the inner store gets an exact size.
func (s *EncryptedStore) Upload(ctx context.Context, container, key string, r io.Reader, size int64, contentType string) (string, error) {
	var sealed bytes.Buffer
	if err := s.enc.Encrypt(r, &sealed); err != nil {
		return "", fmt.Errorf("encrypting object: %w", err)
	}
	return s.inner.Upload(ctx, container, key, &sealed, int64(sealed.Len()), "application/octet-stream")
}

func (s *EncryptedStore) Download(ctx context.Context, container, key string, w io.Writer) error {
	return s.inner.Download(ctx, container, key, w)
}

func (s *EncryptedStore) Delete(ctx context.Context, container, key string) error {
	return s.inner.Delete(ctx, container, key)
}

func (s *EncryptedStore) ValidateSetup(ctx context.Context) error {
	if !s.enc.IsConfigured() {
		return fmt.Errorf("encryption keys are not set up (run 'tt keys init')")
	}
	return s.inner.ValidateSetup(ctx)
}
