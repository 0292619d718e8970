package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job represents a unit of deferred work
// Version: 1.0
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier, used for logging
	Type() string

	// Execute runs the job logic. The context is cancelled when the
	// scheduler stops.
	Execute(ctx context.Context) error
}

// entry is a job waiting in the heap.
type entry struct {
	job    Job
	fireAt time.Time
	seq    uint64
	index  int
}

// jobHeap orders entries by fire time, then by scheduling order.
// It implements heap.Interface.
type jobHeap []*entry

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].fireAt.Equal(h[j].fireAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].fireAt.Before(h[j].fireAt)
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *jobHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
