// Package memory provides an in-memory audit sink for tests and development.
package memory

import (
	"context"
	"sync"

	"github.com/edcalderon/hashpass.tech/pkg/platform/audit"
)

// Sink collects emitted events in memory. Safe for concurrent use.
type Sink struct {
	mu     sync.RWMutex
	events []audit.Event
}

func New() *Sink {
	return &Sink{}
}

// Emit appends the event. Never fails; the zero timestamp is preserved so
// tests can assert exactly what the caller supplied.
func (s *Sink) Emit(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of all collected events in emission order.
func (s *Sink) Events() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByAction returns collected events matching the action.
func (s *Sink) ByAction(action string) []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
