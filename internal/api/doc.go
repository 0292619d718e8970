// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the chat platform's slash command
// webhook to the command interpreter and the event bus.
package api
