package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a named occurrence with a topic-specific payload.
// Events are ephemeral: they are never persisted or replayed.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Topic identifies the kind of event and selects its subscribers
	Topic string `json:"topic"`

	// Payload contains the topic-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified topic and payload.
func NewEvent(topic string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Topic:     topic,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Handler defines an interface for components that react to events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// A returned error is logged by the bus; it is never seen by the emitter.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter defines an interface for components that can emit events.
type Emitter interface {
	// Emit hands the event to every subscriber of its topic and returns
	// without waiting for them to run.
	Emit(ctx context.Context, event *Event) error
}

// Subscriber defines an interface for registering event handlers.
type Subscriber interface {
	// Subscribe registers handler to be invoked once per emission of topic.
	Subscribe(topic string, handler Handler)
}

// Bus combines both sides of the publish/subscribe core.
type Bus interface {
	Emitter
	Subscriber
}
