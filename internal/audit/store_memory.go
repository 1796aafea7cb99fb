package audit

import (
	"context"
	"sync"

	id "stargate/pkg/domain"
)

// InMemory keeps every event in process memory. Used in development and
// tests to inspect what a flow emitted.
type InMemory struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByPerson returns events for one person in emission order.
func (s *InMemory) ListByPerson(_ context.Context, personID id.PersonID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.PersonID == personID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns a copy of every event.
func (s *InMemory) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events...)
}
