// Package domain contains the task entity, its status lifecycle and the
// payloads carried by the events that create and mutate tasks. It has no
// dependency on transport or storage.
package domain
