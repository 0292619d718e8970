package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/slack-taskbot/internal/domain"
	"github.com/phrazzld/slack-taskbot/internal/events"
	"github.com/phrazzld/slack-taskbot/internal/scheduler"
)

// ReminderJobType identifies reminder jobs in scheduler logs.
const ReminderJobType = "task_reminder"

// Messenger posts a text message to a channel.
type Messenger interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// ReminderScheduler queues jobs for later execution.
type ReminderScheduler interface {
	Schedule(job scheduler.Job, fireAt time.Time) error
}

// localLayouts are accepted reminder times without a zone offset.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseReminderTime reads an absolute RFC3339 time, a zone-less date or date
// time interpreted in loc, or a positive Go duration relative to now.
func ParseReminderTime(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimeFormat)
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return now.Add(d), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
}

// ReminderJob delivers one reminder message when executed.
type ReminderJob struct {
	id        uuid.UUID
	Text      string
	User      string
	Channel   string
	FireAt    time.Time
	messenger Messenger
	logger    *slog.Logger
}

var _ scheduler.Job = (*ReminderJob)(nil)

// NewReminderJob creates a job that posts the reminder through messenger.
func NewReminderJob(
	payload domain.ReminderRequested,
	fireAt time.Time,
	messenger Messenger,
	logger *slog.Logger,
) *ReminderJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderJob{
		id:        uuid.New(),
		Text:      payload.Text,
		User:      payload.User,
		Channel:   payload.Channel,
		FireAt:    fireAt,
		messenger: messenger,
		logger:    logger,
	}
}

// ID implements scheduler.Job.
func (j *ReminderJob) ID() uuid.UUID { return j.id }

// Type implements scheduler.Job.
func (j *ReminderJob) Type() string { return ReminderJobType }

// Message is the notification text posted to the channel.
func (j *ReminderJob) Message() string {
	return fmt.Sprintf("⏰ Reminder for <@%s>: %s", j.User, j.Text)
}

// Execute implements scheduler.Job. Failures are returned to the scheduler
// and not retried.
func (j *ReminderJob) Execute(ctx context.Context) error {
	if err := j.messenger.PostMessage(ctx, j.Channel, j.Message()); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", j.Channel, err)
	}
	j.logger.InfoContext(ctx, "reminder sent",
		slog.String("job_id", j.id.String()),
		slog.String("user_id", j.User),
		slog.String("channel_id", j.Channel))
	return nil
}

// ReminderHandler turns task_reminder events into scheduled ReminderJobs.
type ReminderHandler struct {
	scheduler ReminderScheduler
	messenger Messenger
	location  *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

var _ events.Handler = (*ReminderHandler)(nil)

// ReminderOption configures a ReminderHandler.
type ReminderOption func(*ReminderHandler)

// WithReminderClock overrides the time source used to compute delays.
func WithReminderClock(now func() time.Time) ReminderOption {
	return func(h *ReminderHandler) {
		h.now = now
	}
}

// WithReminderLocation sets the zone for reminder times without an offset.
func WithReminderLocation(loc *time.Location) ReminderOption {
	return func(h *ReminderHandler) {
		if loc != nil {
			h.location = loc
		}
	}
}

// NewReminderHandler creates a ReminderHandler.
func NewReminderHandler(
	sched ReminderScheduler,
	messenger Messenger,
	logger *slog.Logger,
	opts ...ReminderOption,
) *ReminderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &ReminderHandler{
		scheduler: sched,
		messenger: messenger,
		location:  time.Local,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "reminder")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleEvent implements events.Handler.
func (h *ReminderHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Topic != domain.TopicTaskReminder {
		return fmt.Errorf("%w: %s", ErrUnexpectedTopic, event.Topic)
	}

	var payload domain.ReminderRequested
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.Topic, err)
	}

	now := h.now()
	fireAt, err := ParseReminderTime(payload.Time, now, h.location)
	if err != nil {
		return err
	}
	if !fireAt.After(now) {
		return fmt.Errorf("%w: %s", ErrReminderInThePast, fireAt.Format(time.RFC3339))
	}

	job := NewReminderJob(payload, fireAt, h.messenger, h.logger)
	if err := h.scheduler.Schedule(job, fireAt); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	h.logger.InfoContext(ctx, "reminder scheduled",
		slog.String("job_id", job.ID().String()),
		slog.String("user_id", payload.User),
		slog.Time("fire_at", fireAt),
		slog.Duration("delay", fireAt.Sub(now)))
	return nil
}
