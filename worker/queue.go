package worker

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrStopped is returned for tasks submitted after Stop.
var ErrStopped = errors.New("worker: queue stopped")

// Task is a unit of background work.
type Task func() error

// Queue runs submitted tasks on a single background goroutine, in
// submission order. Repositories use it so that mutations never run on
// the caller's goroutine while same-entity operations stay serialized.
type Queue struct {
	ch     chan job
	wg     sync.WaitGroup
	logger *zap.Logger

	mu      sync.Mutex
	stopped bool
}

type job struct {
	fn   Task
	done chan error
}

// New creates a Queue with the given buffer size and starts its worker.
func New(buf int, logger *zap.Logger) *Queue {
	if buf <= 0 {
		buf = 64
	}
	q := &Queue{
		ch:     make(chan job, buf),
		logger: logger,
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Submit enqueues fn and returns a 1-buffered channel that receives the
// task's result exactly once. Callers that only want fire-and-forget
// semantics can ignore the channel; the queue logs failures either way.
func (q *Queue) Submit(fn Task) <-chan error {
	done := make(chan error, 1)
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		done <- ErrStopped
		return done
	}
	q.ch <- job{fn: fn, done: done}
	q.mu.Unlock()
	return done
}

// Stop drains queued tasks and shuts the worker down. It blocks until
// the worker goroutine has finished.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.ch)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for j := range q.ch {
		err := q.run(j.fn)
		if err != nil {
			q.logger.Error("background task failed", zap.Error(err))
		}
		j.done <- err
	}
}

func (q *Queue) run(fn Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker: task panicked: %v", r)
			q.logger.Error("task panicked", zap.Any("recover", r))
		}
	}()
	return fn()
}
