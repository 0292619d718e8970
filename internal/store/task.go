package store

import (
	"context"

	"github.com/phrazzld/slack-taskbot/internal/domain"
)

// TaskReader is the read side of the task store, used by the synchronous
// /list path.
type TaskReader interface {
	// FilterByUser returns every task owned by user in insertion order.
	// Returns an empty slice if the user has no tasks.
	FilterByUser(ctx context.Context, user string) ([]domain.Task, error)
}

// TaskStore defines the interface for the ordered task collection.
// Version: 1.0
type TaskStore interface {
	TaskReader

	// Append inserts the task at the end of the collection, assigns it a new
	// unique ID and a pending status, and returns the stored copy.
	// Returns ErrInvalidEntity if the task fails domain validation.
	Append(ctx context.Context, task domain.Task) (domain.Task, error)

	// CompleteFirstPendingMatch marks the first pending task (insertion order)
	// with the given text and user as completed and returns it.
	// The boolean is false when nothing matched; that is not an error.
	CompleteFirstPendingMatch(ctx context.Context, text, user string) (domain.Task, bool, error)
}
