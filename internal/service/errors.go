package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/slack-taskbot/internal/domain"
)

// Sentinel errors returned by the event handlers. Callers check for them with
// errors.Is.
var (
	// ErrInvalidTimeFormat indicates a reminder time that matches none of
	// the accepted formats.
	ErrInvalidTimeFormat = fmt.Errorf("%w: reminder time", domain.ErrInvalidFormat)

	// ErrReminderInThePast indicates a reminder whose fire time is not after now.
	ErrReminderInThePast = errors.New("reminder time is in the past")

	// ErrUnexpectedTopic indicates an event delivered to a handler that does
	// not consume its topic.
	ErrUnexpectedTopic = errors.New("unexpected event topic")
)
