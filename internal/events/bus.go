package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the InMemoryBus
var (
	ErrBusClosed  = errors.New("event bus is closed")
	ErrQueueFull  = errors.New("subscriber queue is full")
	ErrNilEvent   = errors.New("event cannot be nil")
	ErrEmptyTopic = errors.New("event topic cannot be empty")
)

// DefaultQueueSize is the per-subscription buffer used when none is configured.
const DefaultQueueSize = 100

// envelope carries an event together with the context it was emitted under.
type envelope struct {
	ctx   context.Context
	event *Event
}

// subscription is one handler registered for one topic. It owns a buffered
// queue drained by a single goroutine, which keeps same-topic emissions in
// order for that handler.
type subscription struct {
	id      int
	topic   string
	handler Handler
	queue   chan envelope
}

// InMemoryBus is an asynchronous, process-local implementation of Bus.
type InMemoryBus struct {
	mu        sync.RWMutex
	subs      map[string][]*subscription
	nextID    int
	queueSize int
	closed    bool
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// NewInMemoryBus creates a bus whose subscriptions buffer up to queueSize
// pending events each. A non-positive size falls back to DefaultQueueSize.
func NewInMemoryBus(queueSize int, logger *slog.Logger) *InMemoryBus {
	if queueSize <= 0 {
		logger.Warn("invalid event queue size specified, using default",
			"specified_size", queueSize,
			"default_size", DefaultQueueSize)
		queueSize = DefaultQueueSize
	}

	return &InMemoryBus{
		subs:      make(map[string][]*subscription),
		queueSize: queueSize,
		logger:    logger.With("component", "in_memory_event_bus"),
	}
}

// Subscribe registers handler for topic and starts its delivery goroutine.
// Subscriptions made after Close are ignored.
func (b *InMemoryBus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.logger.Warn("ignoring subscription on closed bus", "topic", topic)
		return
	}

	b.nextID++
	sub := &subscription{
		id:      b.nextID,
		topic:   topic,
		handler: handler,
		queue:   make(chan envelope, b.queueSize),
	}
	b.subs[topic] = append(b.subs[topic], sub)

	b.wg.Add(1)
	go b.run(sub)

	b.logger.Debug("registered event handler",
		"topic", topic,
		"subscription_id", sub.id,
		"handler_count", len(b.subs[topic]))
}

// Emit hands event to every subscription of its topic without blocking.
// A full subscription queue does not prevent delivery to the others; all
// hand-off failures are joined into the returned error.
func (b *InMemoryBus) Emit(ctx context.Context, event *Event) error {
	if event == nil {
		return ErrNilEvent
	}
	if event.Topic == "" {
		return ErrEmptyTopic
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	subs := b.subs[event.Topic]
	b.logger.DebugContext(ctx, "emitting event",
		"event_id", event.ID,
		"topic", event.Topic,
		"handler_count", len(subs))

	if len(subs) == 0 {
		b.logger.WarnContext(ctx, "no handlers registered for event",
			"event_id", event.ID,
			"topic", event.Topic)
		return nil
	}

	env := envelope{ctx: context.WithoutCancel(ctx), event: event}

	var errs []error
	for _, sub := range subs {
		select {
		case sub.queue <- env:
		default:
			b.logger.ErrorContext(ctx, "dropping event, subscriber queue is full",
				"event_id", event.ID,
				"topic", event.Topic,
				"subscription_id", sub.id,
				"queue_cap", cap(sub.queue))
			errs = append(errs, fmt.Errorf("%w: topic %s subscription %d capacity %d",
				ErrQueueFull, event.Topic, sub.id, cap(sub.queue)))
		}
	}

	return errors.Join(errs...)
}

// HandlerCount returns the number of handlers subscribed to topic.
func (b *InMemoryBus) HandlerCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Close stops accepting emissions and waits for queued events to be handled.
// It returns ctx.Err() if the handlers have not finished before ctx is done.
func (b *InMemoryBus) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		for _, subs := range b.subs {
			for _, sub := range subs {
				close(sub.queue)
			}
		}
		b.logger.Info("event bus closed, draining subscribers")
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for event handlers: %w", ctx.Err())
	}
}

// run delivers queued events to one subscription until its queue is closed.
func (b *InMemoryBus) run(sub *subscription) {
	defer b.wg.Done()

	for env := range sub.queue {
		b.deliver(sub, env)
	}

	b.logger.Debug("subscription stopped", "topic", sub.topic, "subscription_id", sub.id)
}

// deliver invokes the handler, converting errors and panics into log entries.
func (b *InMemoryBus) deliver(sub *subscription, env envelope) {
	logger := b.logger.With(
		"event_id", env.event.ID,
		"topic", env.event.Topic,
		"subscription_id", sub.id,
	)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(env.ctx, "event handler panicked", "panic", fmt.Sprint(r))
		}
	}()

	if err := sub.handler.HandleEvent(env.ctx, env.event); err != nil {
		logger.ErrorContext(env.ctx, "handler failed to process event", "error", err)
		return
	}

	logger.DebugContext(env.ctx, "event handled")
}

// Ensure InMemoryBus implements Bus
var _ Bus = (*InMemoryBus)(nil)
