package pause

import (
	"context"
	"sync"
)

// InMemoryStore keeps the pause flag in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	paused bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Get(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused, nil
}

func (s *InMemoryStore) Set(_ context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	return nil
}
