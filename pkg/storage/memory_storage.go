package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStorage keeps objects in-process. Used in development mode and in
// tests where no object store is reachable.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ ObjectStorage = &MemoryStorage{}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
	}
}

func (s *MemoryStorage) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(content))
	copy(buf, content)
	s.objects[key] = buf
	return key, nil
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	return buf, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}
