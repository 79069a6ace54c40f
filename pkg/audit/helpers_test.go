package audit_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/inputguard/pkg/audit"
)

// memoryStorage records events and optionally fails.
type memoryStorage struct {
	mu     sync.Mutex
	events []audit.Event
	calls  int
	err    error
}

func (m *memoryStorage) Store(_ context.Context, events ...audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, events...)
	return nil
}

func (m *memoryStorage) snapshot() ([]audit.Event, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audit.Event(nil), m.events...), m.calls
}
