package authz

import (
	"context"
	"sync"

	"attest/pkg/domain"
)

// InMemoryStore keeps role membership in maps keyed by role.
type InMemoryStore struct {
	mu      sync.RWMutex
	members map[Role]map[domain.ActorID]bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{members: make(map[Role]map[domain.ActorID]bool)}
}

func (s *InMemoryStore) IsMember(_ context.Context, role Role, actor domain.ActorID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members[role][actor], nil
}

func (s *InMemoryStore) Add(_ context.Context, role Role, actor domain.ActorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members[role] == nil {
		s.members[role] = make(map[domain.ActorID]bool)
	}
	s.members[role][actor] = true
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, role Role, actor domain.ActorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members[role], actor)
	return nil
}
