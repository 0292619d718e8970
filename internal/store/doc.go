// Package store defines the task store contract shared by the command
// interpreter and the event subscribers. Implementations live under
// internal/platform; exactly one instance is created per process and injected
// into every component that reads or mutates tasks.
package store
