package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryStorage keeps objects in process memory; used for local runs without MinIO and in tests
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewMemoryStorage serves presigned URLs under baseURL
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Put stores the object
func (s *MemoryStorage) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string, _ map[string]string) (*Object, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.mu.Lock()
	s.objects[key] = buf.Bytes()
	s.mu.Unlock()

	return &Object{Key: key, Size: n, ContentType: contentType, UploadedAt: time.Now()}, nil
}

// PresignedGet returns a fake signed URL
func (s *MemoryStorage) PresignedGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if !s.Has(key) {
		return "", fmt.Errorf("object %s not found", key)
	}
	return fmt.Sprintf("%s/%s?expires=%d", s.baseURL, key, int(ttl.Seconds())), nil
}

// PresignedPut returns a fake signed URL
func (s *MemoryStorage) PresignedPut(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s?upload=1&expires=%d", s.baseURL, key, int(ttl.Seconds())), nil
}

// Delete removes the object; missing keys are not an error
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether key is stored
func (s *MemoryStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}
