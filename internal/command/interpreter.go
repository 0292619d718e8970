package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/slack-taskbot/internal/domain"
	"github.com/phrazzld/slack-taskbot/internal/store"
)

// ListTimeLayout renders task creation times in /list replies.
const ListTimeLayout = "1/2/2006, 3:04:05 PM"

// Interpreter maps commands to replies and events.
type Interpreter struct {
	tasks    store.TaskReader
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		i.now = now
	}
}

// WithLocation sets the zone used to render task times.
func WithLocation(loc *time.Location) Option {
	return func(i *Interpreter) {
		if loc != nil {
			i.location = loc
		}
	}
}

// NewInterpreter creates an Interpreter reading tasks from the given store.
func NewInterpreter(tasks store.TaskReader, logger *slog.Logger, opts ...Option) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	i := &Interpreter{
		tasks:    tasks,
		now:      time.Now,
		location: time.Local,
		logger:   logger.With(slog.String("component", "command_interpreter")),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret produces the reply and optional event for cmd. Unknown commands
// yield the help reply, not an error; errors come only from the task store.
func (i *Interpreter) Interpret(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Command {
	case NameTask:
		return i.task(cmd), nil
	case NameReminder:
		return i.reminder(cmd), nil
	case NameComplete:
		return i.complete(cmd), nil
	case NameList:
		return i.list(ctx, cmd)
	default:
		i.logger.DebugContext(ctx, "unrecognized command",
			slog.String("command", cmd.Command),
			slog.String("user_id", cmd.UserID))
		return Result{Reply: Reply{ResponseType: ResponseEphemeral, Text: HelpText}}, nil
	}
}

func (i *Interpreter) task(cmd Command) Result {
	return Result{
		Reply: Reply{
			ResponseType: ResponseInChannel,
			Text:         "✅ Task created: " + cmd.Text,
		},
		Emission: &Emission{
			Topic: domain.TopicTaskCreated,
			Payload: domain.TaskCreated{
				Text:      cmd.Text,
				User:      cmd.UserID,
				Channel:   cmd.ChannelID,
				Timestamp: i.now().UTC(),
			},
		},
	}
}

// reminder splits the argument at the first space into the time token and
// the reminder text. Without a space the text is empty.
func (i *Interpreter) reminder(cmd Command) Result {
	when, text, _ := strings.Cut(cmd.Text, " ")
	return Result{
		Reply: Reply{
			ResponseType: ResponseInChannel,
			Text:         fmt.Sprintf("⏰ Reminder set for %s: %s", when, text),
		},
		Emission: &Emission{
			Topic: domain.TopicTaskReminder,
			Payload: domain.ReminderRequested{
				Text:      text,
				User:      cmd.UserID,
				Channel:   cmd.ChannelID,
				Time:      when,
				Timestamp: i.now().UTC(),
			},
		},
	}
}

// complete only announces intent; matching happens in the storage subscriber.
func (i *Interpreter) complete(cmd Command) Result {
	return Result{
		Reply: Reply{
			ResponseType: ResponseInChannel,
			Text:         "✅ Task completed: " + cmd.Text,
		},
		Emission: &Emission{
			Topic: domain.TopicTaskCompleted,
			Payload: domain.TaskCompleted{
				Text:      cmd.Text,
				User:      cmd.UserID,
				Channel:   cmd.ChannelID,
				Timestamp: i.now().UTC(),
			},
		},
	}
}

func (i *Interpreter) list(ctx context.Context, cmd Command) (Result, error) {
	tasks, err := i.tasks.FilterByUser(ctx, cmd.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list tasks for user %s: %w", cmd.UserID, err)
	}

	if len(tasks) == 0 {
		return Result{Reply: Reply{ResponseType: ResponseEphemeral, Text: "You have no tasks."}}, nil
	}

	var b strings.Builder
	b.WriteString("Your tasks:\n")
	for n, t := range tasks {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(i.formatTask(t))
	}
	return Result{Reply: Reply{ResponseType: ResponseEphemeral, Text: b.String()}}, nil
}

func (i *Interpreter) formatTask(t domain.Task) string {
	glyph := "⏳"
	if t.Status == domain.TaskStatusCompleted {
		glyph = "✅"
	}
	return fmt.Sprintf("%s %s (%s)", glyph, t.Text, t.CreatedAt.In(i.location).Format(ListTimeLayout))
}
