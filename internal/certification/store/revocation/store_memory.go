// Package revocation persists the revocation audit log, keyed by
// certification id. Entries are written only as a side effect of revocation
// and never mutated afterward.
package revocation

import (
	"context"
	"sync"

	"attest/internal/certification/models"
	"attest/pkg/domain"
	"attest/pkg/platform/sentinel"
)

// InMemoryStore keeps the log in a map. Append is last-write-wins by key;
// the service's InvalidStatus guard keeps that path unreachable in correct
// operation.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.CertificationID]models.RevocationEntry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[domain.CertificationID]models.RevocationEntry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry models.RevocationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.CertificationID] = entry
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.CertificationID) (models.RevocationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.entries[id]; ok {
		return entry, nil
	}
	return models.RevocationEntry{}, sentinel.ErrNotFound
}
