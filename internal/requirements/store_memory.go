package requirements

import (
	"context"
	"sync"

	"attest/pkg/domain"
	"attest/pkg/platform/sentinel"
)

// InMemoryStore keeps the catalog in a map. It favors clarity over
// performance; the catalog is small and rarely written.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.CertificationType]Requirement
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[domain.CertificationType]Requirement)}
}

func (s *InMemoryStore) Save(_ context.Context, req Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[req.Type] = req
	return nil
}

func (s *InMemoryStore) FindByType(_ context.Context, certType domain.CertificationType) (Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if req, ok := s.records[certType]; ok {
		return req, nil
	}
	return Requirement{}, sentinel.ErrNotFound
}
