package mocks

import (
	"context"
	"sync"
)

// MockMessenger implements service.Messenger for testing
type MockMessenger struct {
	PostMessageFn func(ctx context.Context, channel, text string) error
	Err           error

	mu    sync.Mutex
	posts []Post
}

// Post is one recorded outbound message.
type Post struct {
	Channel string
	Text    string
}

// PostMessage implements service.Messenger
func (m *MockMessenger) PostMessage(ctx context.Context, channel, text string) error {
	m.mu.Lock()
	m.posts = append(m.posts, Post{Channel: channel, Text: text})
	m.mu.Unlock()

	if m.PostMessageFn != nil {
		return m.PostMessageFn(ctx, channel, text)
	}
	return m.Err
}

// Posts returns the recorded messages.
func (m *MockMessenger) Posts() []Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Post(nil), m.posts...)
}
