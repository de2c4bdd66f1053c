package testutil

import (
	"context"
	"errors"
	"io"

	"tt-go/internal/tt"
)

// ErrStoreDown is returned by FailingStore.
var ErrStoreDown = errors.New("object store unavailable")

// FailingStore wraps a store and fails the operations switched on.
type FailingStore struct {
	tt.ObjectStore
	FailUpload   bool
	FailDownload bool
	FailDelete   bool
}

func (s *FailingStore) Upload(ctx context.Context, container, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.FailUpload {
		return "", ErrStoreDown
	}
	return s.ObjectStore.Upload(ctx, container, key, r, size, contentType)
}

func (s *FailingStore) Download(ctx context.Context, container, key string, w io.Writer) error {
	if s.FailDownload {
		return ErrStoreDown
	}
	return s.ObjectStore.Download(ctx, container, key, w)
}

func (s *FailingStore) Delete(ctx context.Context, container, key string) error {
	if s.FailDelete {
		return ErrStoreDown
	}
	return s.ObjectStore.Delete(ctx, container, key)
}
