// Package memory is an in-memory audit sink for unit tests and local runs.
package memory

import (
	"context"
	"sync"

	audit "orgdir/pkg/platform/audit"
)

// Store collects appended events in order.
type Store struct {
	mu     sync.Mutex
	events []audit.Event
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (s *Store) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event{}, s.events...)
}
