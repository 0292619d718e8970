package domain

import (
	"errors"
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values. The only transition is pending -> completed.
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskUser     = fmt.Errorf("%w: task user cannot be empty", ErrValidation)
	ErrInvalidTaskStatus = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrTaskAlreadyDone   = errors.New("task is already completed")
)

// Task is a to-do entry created from a chat slash command.
// Tasks are owned by the task store; everything outside it works on copies.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	User      string     `json:"user"`
	Channel   string     `json:"channel"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewTask builds a pending task from a task_created payload.
// The ID is left empty; the store assigns it on append.
func NewTask(p TaskCreated) (Task, error) {
	task := Task{
		Text:      p.Text,
		User:      p.User,
		Channel:   p.Channel,
		Status:    TaskStatusPending,
		CreatedAt: p.Timestamp,
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.User == "" {
		return ErrEmptyTaskUser
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// Complete moves a pending task to completed.
func (t *Task) Complete() error {
	switch t.Status {
	case TaskStatusPending:
	case TaskStatusCompleted:
		return ErrTaskAlreadyDone
	default:
		return ErrInvalidTaskStatus
	}
	t.Status = TaskStatusCompleted
	return nil
}

// IsPending reports whether the task still awaits completion.
func (t *Task) IsPending() bool {
	return t.Status == TaskStatusPending
}

func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
