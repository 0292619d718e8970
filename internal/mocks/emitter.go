package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/slack-taskbot/internal/events"
)

// MockEmitter implements events.Emitter for testing
type MockEmitter struct {
	EmitFn func(ctx context.Context, event *events.Event) error
	Err    error

	mu      sync.Mutex
	emitted []*events.Event
}

// Emit implements events.Emitter
func (m *MockEmitter) Emit(ctx context.Context, event *events.Event) error {
	m.mu.Lock()
	m.emitted = append(m.emitted, event)
	m.mu.Unlock()

	if m.EmitFn != nil {
		return m.EmitFn(ctx, event)
	}
	return m.Err
}

// Emitted returns the recorded events.
func (m *MockEmitter) Emitted() []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*events.Event(nil), m.emitted...)
}
