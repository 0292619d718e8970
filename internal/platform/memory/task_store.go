package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/slack-taskbot/internal/domain"
	"github.com/phrazzld/slack-taskbot/internal/store"
)

// TaskStore implements store.TaskStore with an ordered slice guarded by a mutex.
// Subscribers run on separate goroutines, so every operation holds the lock
// for its whole read-modify-write.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	newID  func() string
	logger *slog.Logger
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	return &TaskStore{
		tasks:  make([]domain.Task, 0),
		newID:  uuid.NewString,
		logger: logger.With("component", "memory_task_store"),
	}
}

// Append inserts the task at the end of the collection and assigns its ID.
func (s *TaskStore) Append(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.Status = domain.TaskStatusPending
	if err := task.Validate(); err != nil {
		return domain.Task{}, store.NewStoreError("task", "append", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	task.ID = s.newID()
	s.tasks = append(s.tasks, task)
	count := len(s.tasks)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "task appended",
		"task_id", task.ID,
		"user", task.User,
		"task_count", count)

	return task, nil
}

// CompleteFirstPendingMatch marks the oldest pending task matching text and
// user as completed. It is a no-op when nothing matches.
func (s *TaskStore) CompleteFirstPendingMatch(
	ctx context.Context,
	text, user string,
) (domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		t := &s.tasks[i]
		if t.Text != text || t.User != user {
			continue
		}
		if err := t.Complete(); err != nil {
			if errors.Is(err, domain.ErrTaskAlreadyDone) {
				continue
			}
			return domain.Task{}, false, store.NewStoreError("task", "complete", "status transition failed",
				fmt.Errorf("%w: %w", store.ErrUpdateFailed, err))
		}
		s.logger.DebugContext(ctx, "task completed", "task_id", t.ID, "user", user)
		return *t, true, nil
	}

	return domain.Task{}, false, nil
}

// FilterByUser returns copies of the user's tasks in insertion order.
func (s *TaskStore) FilterByUser(_ context.Context, user string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if t.User == user {
			result = append(result, t)
		}
	}
	return result, nil
}

// Len returns the total number of stored tasks across all users.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)
