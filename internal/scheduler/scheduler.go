package scheduler

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by the Scheduler
var (
	ErrSchedulerStopped = errors.New("scheduler is stopped")
	ErrNilJob           = errors.New("job cannot be nil")
	ErrDuplicateJob     = errors.New("job is already scheduled")
)

// Scheduler fires jobs at their scheduled time.
type Scheduler struct {
	mu      sync.Mutex
	queue   jobHeap
	byID    map[uuid.UUID]*entry
	seq     uint64
	started bool
	stopped bool

	// wake interrupts the loop's wait when the earliest job changes
	wake chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	now        func() time.Time
	logger     *slog.Logger
	errHandler func(job Job, err error)
}

// New creates a stopped Scheduler. Jobs may be scheduled before Start;
// they fire once the loop runs.
func New(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	logger = logger.With("component", "scheduler")

	return &Scheduler{
		queue:  make(jobHeap, 0),
		byID:   make(map[uuid.UUID]*entry),
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
		logger: logger,
		errHandler: func(job Job, err error) {
			// Default error handler just logs the error
			logger.Error("scheduled job failed",
				"job_id", job.ID(),
				"job_type", job.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom handler for job execution failures
func (s *Scheduler) SetErrorHandler(handler func(job Job, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errHandler = handler
}

// Schedule queues job to run at fireAt. A fireAt in the past runs the job on
// the next loop iteration.
func (s *Scheduler) Schedule(job Job, fireAt time.Time) error {
	if job == nil {
		return ErrNilJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if _, exists := s.byID[job.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.ID())
	}

	s.seq++
	e := &entry{job: job, fireAt: fireAt, seq: s.seq}
	heap.Push(&s.queue, e)
	s.byID[job.ID()] = e

	s.logger.Debug("job scheduled",
		"job_id", job.ID(),
		"job_type", job.Type(),
		"fire_at", fireAt,
		"pending", len(s.queue))

	s.signal()
	return nil
}

// Cancel removes a job that has not fired yet. It reports whether the job
// was found.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, e.index)
	delete(s.byID, id)
	s.signal()

	s.logger.Debug("job cancelled", "job_id", id, "job_type", e.job.Type())
	return true
}

// Pending returns the number of jobs waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// NextFireAt returns the fire time of the earliest pending job.
func (s *Scheduler) NextFireAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].fireAt, true
}

// Start launches the background loop. Calling it more than once, or after
// Stop, has no effect.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	s.wg.Add(1)
	go s.loop()

	s.logger.Info("scheduler started", "pending", len(s.queue))
}

// Stop cancels running jobs, drops jobs that have not fired and waits for
// the loop and in-flight jobs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	dropped := len(s.queue)
	s.queue = s.queue[:0]
	s.byID = make(map[uuid.UUID]*entry)
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	s.logger.Info("scheduler stopped", "dropped_jobs", dropped)
}

// signal wakes the loop without blocking. Callers hold s.mu.
func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// loop fires due jobs and sleeps until the next one is due.
func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		due, wait, hasNext := s.takeDue()
		for _, e := range due {
			s.fire(e)
		}

		var timer *time.Timer
		var timerC <-chan time.Time
		if hasNext {
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-s.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-s.wake:
		case <-timerC:
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// takeDue pops every job whose fire time has passed and reports how long
// to wait for the next one.
func (s *Scheduler) takeDue() ([]*entry, time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, 0, false
	}

	now := s.now()
	var due []*entry
	for len(s.queue) > 0 && !s.queue[0].fireAt.After(now) {
		e := heap.Pop(&s.queue).(*entry)
		delete(s.byID, e.job.ID())
		due = append(due, e)
	}

	if len(s.queue) == 0 {
		return due, 0, false
	}
	return due, s.queue[0].fireAt.Sub(now), true
}

// fire runs one job on its own goroutine.
func (s *Scheduler) fire(e *entry) {
	s.mu.Lock()
	errHandler := s.errHandler
	s.mu.Unlock()

	logger := s.logger.With(
		"job_id", e.job.ID(),
		"job_type", e.job.Type(),
	)
	logger.Debug("firing job", "fire_at", e.fireAt, "lateness", s.now().Sub(e.fireAt))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				errHandler(e.job, fmt.Errorf("job panicked: %v", r))
			}
		}()

		if err := e.job.Execute(s.ctx); err != nil {
			errHandler(e.job, err)
			return
		}
		logger.Debug("job completed")
	}()
}
