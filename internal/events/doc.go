// Package events provides the in-process publish/subscribe core.
//
// A request emits a named event with a JSON payload; subscribers registered for
// that topic react asynchronously on their own goroutines. Emitting never waits
// for subscribers, and subscriber failures never travel back to the emitter:
// they are logged at the bus boundary.
//
// The primary components are:
// - Event: a topic plus its payload
// - Handler: interface for components that react to events
// - Emitter / Subscriber: the two sides of the bus
// - InMemoryBus: the goroutine-per-subscription implementation
package events
