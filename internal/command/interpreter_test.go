package command_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/slack-taskbot/internal/command"
	"github.com/phrazzld/slack-taskbot/internal/domain"
	"github.com/phrazzld/slack-taskbot/internal/mocks"
	"github.com/phrazzld/slack-taskbot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func newInterpreter(tasks store.TaskReader) *command.Interpreter {
	return command.NewInterpreter(tasks,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		command.WithClock(func() time.Time { return fixedNow }),
		command.WithLocation(time.UTC),
	)
}

func cmd(name, text string) command.Command {
	return command.Command{
		Command:   name,
		Text:      text,
		UserID:    "U1",
		ChannelID: "C1",
	}
}

func TestInterpretEmittingCommands(t *testing.T) {
	testCases := []struct {
		name         string
		command      command.Command
		expectedText string
		topic        string
		payload      any
	}{
		{
			name:         "task",
			command:      cmd("/task", "buy milk"),
			expectedText: "✅ Task created: buy milk",
			topic:        domain.TopicTaskCreated,
			payload: domain.TaskCreated{
				Text: "buy milk", User: "U1", Channel: "C1", Timestamp: fixedNow,
			},
		},
		{
			name:         "complete",
			command:      cmd("/complete", "buy milk"),
			expectedText: "✅ Task completed: buy milk",
			topic:        domain.TopicTaskCompleted,
			payload: domain.TaskCompleted{
				Text: "buy milk", User: "U1", Channel: "C1", Timestamp: fixedNow,
			},
		},
		{
			name:         "reminder",
			command:      cmd("/reminder", "2030-01-01T10:00:00Z call mom"),
			expectedText: "⏰ Reminder set for 2030-01-01T10:00:00Z: call mom",
			topic:        domain.TopicTaskReminder,
			payload: domain.ReminderRequested{
				Text: "call mom", User: "U1", Channel: "C1",
				Time: "2030-01-01T10:00:00Z", Timestamp: fixedNow,
			},
		},
		{
			name:         "reminder without text",
			command:      cmd("/reminder", "15m"),
			expectedText: "⏰ Reminder set for 15m: ",
			topic:        domain.TopicTaskReminder,
			payload: domain.ReminderRequested{
				Text: "", User: "U1", Channel: "C1", Time: "15m", Timestamp: fixedNow,
			},
		},
		{
			name:         "reminder keeps inner spacing",
			command:      cmd("/reminder", "1h water  the plants"),
			expectedText: "⏰ Reminder set for 1h: water  the plants",
			topic:        domain.TopicTaskReminder,
			payload: domain.ReminderRequested{
				Text: "water  the plants", User: "U1", Channel: "C1", Time: "1h", Timestamp: fixedNow,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tasks := &mocks.MockTaskStore{}
			result, err := newInterpreter(tasks).Interpret(context.Background(), tc.command)

			require.NoError(t, err)
			assert.Equal(t, command.ResponseInChannel, result.Reply.ResponseType)
			assert.Equal(t, tc.expectedText, result.Reply.Text)
			require.NotNil(t, result.Emission)
			assert.Equal(t, tc.topic, result.Emission.Topic)
			assert.Equal(t, tc.payload, result.Emission.Payload)
			assert.Empty(t, tasks.FilterCalls(), "emitting commands must not read the store")
		})
	}
}

func TestInterpretUnknownCommand(t *testing.T) {
	for _, name := range []string{"/help", "/tasks", "/TASK", ""} {
		t.Run(name, func(t *testing.T) {
			result, err := newInterpreter(&mocks.MockTaskStore{}).Interpret(context.Background(), cmd(name, "x"))

			require.NoError(t, err)
			assert.Nil(t, result.Emission)
			assert.Equal(t, command.ResponseEphemeral, result.Reply.ResponseType)
			assert.Equal(t, command.HelpText, result.Reply.Text)
		})
	}
}

func TestInterpretListEmpty(t *testing.T) {
	tasks := &mocks.MockTaskStore{Tasks: []domain.Task{}}

	result, err := newInterpreter(tasks).Interpret(context.Background(), cmd("/list", ""))

	require.NoError(t, err)
	assert.Nil(t, result.Emission)
	assert.Equal(t, command.Reply{ResponseType: command.ResponseEphemeral, Text: "You have no tasks."}, result.Reply)
	assert.Equal(t, []string{"U1"}, tasks.FilterCalls())
}

func TestInterpretListFormatsTasks(t *testing.T) {
	created := time.Date(2024, 3, 9, 21, 5, 7, 0, time.UTC)
	tasks := &mocks.MockTaskStore{Tasks: []domain.Task{
		{ID: "1", Text: "buy milk", User: "U1", Status: domain.TaskStatusPending, CreatedAt: created},
		{ID: "2", Text: "call mom", User: "U1", Status: domain.TaskStatusCompleted, CreatedAt: created.Add(time.Hour)},
	}}

	result, err := newInterpreter(tasks).Interpret(context.Background(), cmd("/list", ""))

	require.NoError(t, err)
	assert.Nil(t, result.Emission)
	assert.Equal(t, command.ResponseEphemeral, result.Reply.ResponseType)
	assert.Equal(t,
		"Your tasks:\n⏳ buy milk (3/9/2024, 9:05:07 PM)\n✅ call mom (3/9/2024, 10:05:07 PM)",
		result.Reply.Text)
}

func TestInterpretListUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	tasks := &mocks.MockTaskStore{Tasks: []domain.Task{
		{Text: "early", User: "U1", Status: domain.TaskStatusPending,
			CreatedAt: time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)},
	}}

	i := command.NewInterpreter(tasks, nil, command.WithLocation(loc))
	result, err := i.Interpret(context.Background(), cmd("/list", ""))

	require.NoError(t, err)
	assert.Equal(t, "Your tasks:\n⏳ early (1/1/2024, 10:00:00 PM)", result.Reply.Text)
}

func TestInterpretListStoreError(t *testing.T) {
	boom := errors.New("store unavailable")
	tasks := &mocks.MockTaskStore{Err: boom}

	_, err := newInterpreter(tasks).Interpret(context.Background(), cmd("/list", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
