package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and local development.
// TTLs are ignored; test sessions live as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, token string) (string, bool, error) {
	if s.FailWith != nil {
		return "", false, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[token]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, token, value string, ttl time.Duration) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[token] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, token)
	return nil
}
