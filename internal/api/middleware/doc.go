// Package middleware contains the HTTP middleware that guards and decorates
// the slash command endpoint: shared-secret verification and per-request
// trace IDs.
package middleware
