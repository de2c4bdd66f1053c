package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"tt-go/internal/tt"
)

// MemoryStore keeps objects in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

var _ tt.ObjectStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) Upload(ctx context.Context, container, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := checkAddress(container, key); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading object: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[container+"/"+key] = memoryObject{data: data, contentType: contentType}
	return "memory://" + container + "/" + key, nil
}

func (m *MemoryStore) Download(ctx context.Context, container, key string, w io.Writer) error {
	m.mu.RLock()
	obj, ok := m.objects[container+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s/%s: %w", container, key, ErrNotFound)
	}
	if _, err := io.Copy(w, bytes.NewReader(obj.data)); err != nil {
		return fmt.Errorf("writing object: %w", err)
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, container, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, container+"/"+key)
	return nil
}

func (m *MemoryStore) ValidateSetup(ctx context.Context) error {
	return nil
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Has reports whether the object exists.
func (m *MemoryStore) Has(container, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[container+"/"+key]
	return ok
}
