package audit

import (
	"context"
	"sync"
)

// InMemoryStore is an append-only event sink for single-process deployments
// and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByCertification returns events for one certification in append order.
func (s *InMemoryStore) ListByCertification(_ context.Context, certificationID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.CertificationID == certificationID {
			out = append(out, e)
		}
	}
	return out, nil
}
