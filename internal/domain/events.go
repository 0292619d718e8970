package domain

import "time"

// Event topics emitted by the command interpreter.
const (
	TopicTaskCreated   = "task_created"
	TopicTaskCompleted = "task_completed"
	TopicTaskReminder  = "task_reminder"
)

// TaskCreated is the payload of a task_created event.
type TaskCreated struct {
	Text      string    `json:"text"`
	User      string    `json:"user"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskCompleted is the payload of a task_completed event.
// Matching against stored tasks happens in the subscriber.
type TaskCompleted struct {
	Text      string    `json:"text"`
	User      string    `json:"user"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// ReminderRequested is the payload of a task_reminder event.
// Time is the raw token typed by the user; it is parsed by the reminder handler.
type ReminderRequested struct {
	Text      string    `json:"text"`
	User      string    `json:"user"`
	Channel   string    `json:"channel"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}
