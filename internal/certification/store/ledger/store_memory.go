// Package ledger persists certification records keyed by their derived id,
// plus the issuance counter scalar.
package ledger

import (
	"context"
	"sync"

	"attest/internal/certification/models"
	"attest/pkg/domain"
	"attest/pkg/platform/sentinel"
)

// InMemoryStore keeps records in a map guarded by one mutex. Mutate holds
// the lock across the caller's validate-and-build callback so a lifecycle
// operation observes and writes the record atomically.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.CertificationID]models.CertificationRecord
	issued  uint64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[domain.CertificationID]models.CertificationRecord)}
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.CertificationID) (models.CertificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[id]; ok {
		return rec.Clone(), nil
	}
	return models.CertificationRecord{}, sentinel.ErrNotFound
}

// Mutate applies fn to the current record under the store lock. fn receives
// nil when no record exists and returns the record to write. Any error from
// fn aborts the call with no mutation. Creating a record (fn called with
// nil) increments the issuance counter.
func (s *InMemoryStore) Mutate(
	_ context.Context,
	id domain.CertificationID,
	fn func(existing *models.CertificationRecord) (models.CertificationRecord, error),
) (models.CertificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *models.CertificationRecord
	if rec, ok := s.records[id]; ok {
		c := rec.Clone()
		existing = &c
	}

	updated, err := fn(existing)
	if err != nil {
		return models.CertificationRecord{}, err
	}

	s.records[id] = updated.Clone()
	if existing == nil {
		s.issued++
	}
	return updated, nil
}

// IssuedTotal returns the issuance counter: the number of records ever
// created by first-time issuance.
func (s *InMemoryStore) IssuedTotal(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued, nil
}
