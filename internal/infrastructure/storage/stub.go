// Package storage provides blob storage implementations for catalog assets.
package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
)

// Ensure InMemoryBlobStore implements BlobStore
var _ catalogapp.BlobStore = (*InMemoryBlobStore)(nil)

// InMemoryBlobStore keeps objects in a map. Use it for local development
// before a real S3 backend is wired up.
type InMemoryBlobStore struct {
	// BaseURL is the base URL returned for stored objects.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryBlobStore creates a new InMemoryBlobStore
func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores a copy of data under path and returns its URL
func (s *InMemoryBlobStore) Upload(_ context.Context, path string, data []byte, _ string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("storage path is required")
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[path] = buf
	s.mu.Unlock()

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/"), nil
}

// Download returns the bytes previously stored under the URL's path
func (s *InMemoryBlobStore) Download(_ context.Context, rawURL string) ([]byte, error) {
	path := strings.TrimPrefix(rawURL, strings.TrimSuffix(s.BaseURL, "/")+"/")

	s.mu.RLock()
	data, ok := s.objects[path]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("object not found: %s", rawURL)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Len returns the number of stored objects
func (s *InMemoryBlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
