package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/slack-taskbot/internal/domain"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	AppendFn                    func(ctx context.Context, task domain.Task) (domain.Task, error)
	CompleteFirstPendingMatchFn func(ctx context.Context, text, user string) (domain.Task, bool, error)
	FilterByUserFn              func(ctx context.Context, user string) ([]domain.Task, error)

	// Default response values
	Tasks []domain.Task
	Err   error

	mu            sync.Mutex
	appended      []domain.Task
	completeCalls []CompleteCall
	filterCalls   []string
}

// CompleteCall records the arguments of one CompleteFirstPendingMatch call.
type CompleteCall struct {
	Text string
	User string
}

// Append implements store.TaskStore
func (m *MockTaskStore) Append(ctx context.Context, task domain.Task) (domain.Task, error) {
	m.mu.Lock()
	m.appended = append(m.appended, task)
	m.mu.Unlock()

	if m.AppendFn != nil {
		return m.AppendFn(ctx, task)
	}
	return task, m.Err
}

// CompleteFirstPendingMatch implements store.TaskStore
func (m *MockTaskStore) CompleteFirstPendingMatch(
	ctx context.Context,
	text, user string,
) (domain.Task, bool, error) {
	m.mu.Lock()
	m.completeCalls = append(m.completeCalls, CompleteCall{Text: text, User: user})
	m.mu.Unlock()

	if m.CompleteFirstPendingMatchFn != nil {
		return m.CompleteFirstPendingMatchFn(ctx, text, user)
	}
	return domain.Task{}, false, m.Err
}

// FilterByUser implements store.TaskReader
func (m *MockTaskStore) FilterByUser(ctx context.Context, user string) ([]domain.Task, error) {
	m.mu.Lock()
	m.filterCalls = append(m.filterCalls, user)
	m.mu.Unlock()

	if m.FilterByUserFn != nil {
		return m.FilterByUserFn(ctx, user)
	}
	return m.Tasks, m.Err
}

// Appended returns the tasks passed to Append.
func (m *MockTaskStore) Appended() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Task(nil), m.appended...)
}

// CompleteCalls returns the arguments passed to CompleteFirstPendingMatch.
func (m *MockTaskStore) CompleteCalls() []CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompleteCall(nil), m.completeCalls...)
}

// FilterCalls returns the users passed to FilterByUser.
func (m *MockTaskStore) FilterCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.filterCalls...)
}
