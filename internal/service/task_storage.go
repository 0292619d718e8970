package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/slack-taskbot/internal/domain"
	"github.com/phrazzld/slack-taskbot/internal/events"
	"github.com/phrazzld/slack-taskbot/internal/store"
)

// TaskStorageHandler applies task_created and task_completed events to the
// task store. Other topics are ignored.
type TaskStorageHandler struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ events.Handler = (*TaskStorageHandler)(nil)

// NewTaskStorageHandler creates a TaskStorageHandler.
func NewTaskStorageHandler(tasks store.TaskStore, logger *slog.Logger) *TaskStorageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStorageHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_storage")),
	}
}

// Topics lists the topics this handler consumes.
func (h *TaskStorageHandler) Topics() []string {
	return []string{domain.TopicTaskCreated, domain.TopicTaskCompleted}
}

// HandleEvent implements events.Handler.
func (h *TaskStorageHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Topic {
	case domain.TopicTaskCreated:
		return h.create(ctx, event)
	case domain.TopicTaskCompleted:
		return h.complete(ctx, event)
	default:
		h.logger.DebugContext(ctx, "ignoring event", slog.String("topic", event.Topic))
		return nil
	}
}

func (h *TaskStorageHandler) create(ctx context.Context, event *events.Event) error {
	var payload domain.TaskCreated
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.Topic, err)
	}

	task, err := domain.NewTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build task: %w", err)
	}

	stored, err := h.tasks.Append(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to store task: %w", err)
	}

	h.logger.InfoContext(ctx, "task stored",
		slog.String("task_id", stored.ID),
		slog.String("user_id", stored.User),
		slog.String("channel_id", stored.Channel))
	return nil
}

// complete marks the first pending task with the same text and user. A
// missing match is not an error.
func (h *TaskStorageHandler) complete(ctx context.Context, event *events.Event) error {
	var payload domain.TaskCompleted
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.Topic, err)
	}

	task, ok, err := h.tasks.CompleteFirstPendingMatch(ctx, payload.Text, payload.User)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if !ok {
		h.logger.InfoContext(ctx, "no pending task matched completion",
			slog.String("user_id", payload.User),
			slog.String("text", payload.Text))
		return nil
	}

	h.logger.InfoContext(ctx, "task completed",
		slog.String("task_id", task.ID),
		slog.String("user_id", task.User))
	return nil
}
