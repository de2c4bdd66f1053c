package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"tt-go/internal/tt"
)

// FileSystemStore stores objects as files:
//
//	<root>/
//	  <container>/
//	    <key>
type FileSystemStore struct {
	root    string
	baseURL string
}

var _ tt.ObjectStore = (*FileSystemStore)(nil)

// NewFileSystemStore creates a store rooted at root. When baseURL is set the
// returned URLs are built from it, otherwise they are file:// URLs.
func NewFileSystemStore(root, baseURL string) (*FileSystemStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving store root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}
	return &FileSystemStore{root: abs, baseURL: baseURL}, nil
}

func (s *FileSystemStore) path(container, key string) string {
	return filepath.Join(s.root, container, filepath.FromSlash(key))
}

// Upload writes the object with a temp file and rename, so readers never see
// a partial object.
func (s *FileSystemStore) Upload(ctx context.Context, container, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := checkAddress(container, key); err != nil {
		return "", err
	}
	dest := s.path(container, key)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if size >= 0 && written != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true

	if s.baseURL != "" {
		return publicURL(s.baseURL, container, key), nil
	}
	return "file://" + filepath.ToSlash(dest), nil
}

func (s *FileSystemStore) Download(ctx context.Context, container, key string, w io.Writer) error {
	if err := checkAddress(container, key); err != nil {
		return err
	}
	f, err := os.Open(s.path(container, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s/%s: %w", container, key, ErrNotFound)
		}
		return fmt.Errorf("failed to open object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read object: %w", err)
	}
	return nil
}

func (s *FileSystemStore) Delete(ctx context.Context, container, key string) error {
	if err := checkAddress(container, key); err != nil {
		return err
	}
	if err := os.Remove(s.path(container, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ValidateSetup checks that the root is a writable directory.
func (s *FileSystemStore) ValidateSetup(ctx context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("store root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root is not a directory: %s", s.root)
	}
	probe, err := os.CreateTemp(s.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("store root not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}
