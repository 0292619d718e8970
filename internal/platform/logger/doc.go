// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON
// or text logging with configurable log levels. Every record passes through a
// redacting handler so that chat credentials never reach the log stream.
package logger
