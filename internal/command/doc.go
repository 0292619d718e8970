// Package command interprets slash commands. Interpretation is a pure step
// apart from the read-only task listing: it produces the reply shown to the
// invoking user and, for mutating commands, the event that carries the
// change to the rest of the system.
package command
