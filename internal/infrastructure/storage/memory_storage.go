package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// MemoryObject is an object held by MemoryObjectStorage
type MemoryObject struct {
	ContentType string
	Data        []byte
}

// MemoryObjectStorage keeps objects in process memory. It backs local
// development and tests; the objects are not served over HTTP.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]MemoryObject
	urls    publicURLs
}

// NewMemoryObjectStorage creates a MemoryObjectStorage whose URLs start
// with baseURL
func NewMemoryObjectStorage(baseURL string) (*MemoryObjectStorage, error) {
	if baseURL == "" {
		baseURL = "http://localhost/storage"
	}
	urls, err := newPublicURLs(baseURL)
	if err != nil {
		return nil, err
	}
	return &MemoryObjectStorage{
		objects: make(map[string]MemoryObject),
		urls:    urls,
	}, nil
}

// PutObject reads body fully and stores it under key
func (m *MemoryObjectStorage) PutObject(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read object %s: %w", key, err)
	}

	m.mu.Lock()
	m.objects[key] = MemoryObject{ContentType: contentType, Data: data}
	m.mu.Unlock()

	return m.urls.URLFor(key), nil
}

// DeleteObject removes key; deleting a missing key succeeds
func (m *MemoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// KeyFromURL implements the storage port
func (m *MemoryObjectStorage) KeyFromURL(rawURL string) (string, bool) {
	return m.urls.KeyFor(rawURL)
}

// Object returns a stored object
func (m *MemoryObjectStorage) Object(key string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}
