// Package clock abstracts the platform's monotonically increasing counter.
// Every lifecycle operation reads the height exactly once and uses it
// consistently within that call.
package clock

import (
	"sync"
	"time"

	"attest/pkg/domain"
)

// Clock yields the current height.
type Clock interface {
	Now() domain.Height
}

// System maps wall-clock time onto heights at a fixed rate, anchored at the
// Unix epoch. It stands in for the hosting platform's counter in
// single-process deployments.
type System struct {
	heightsPerDay uint64
}

func NewSystem(heightsPerDay uint64) *System {
	return &System{heightsPerDay: heightsPerDay}
}

func (s *System) Now() domain.Height {
	elapsed := uint64(time.Now().Unix())
	return domain.Height(elapsed * s.heightsPerDay / 86400)
}

// Manual is a test clock whose height only moves when told to.
type Manual struct {
	mu sync.Mutex
	h  domain.Height
}

func NewManual(start domain.Height) *Manual {
	return &Manual{h: start}
}

func (m *Manual) Now() domain.Height {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h
}

func (m *Manual) Set(h domain.Height) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.h = h
}

func (m *Manual) Advance(delta domain.Height) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.h += delta
}
