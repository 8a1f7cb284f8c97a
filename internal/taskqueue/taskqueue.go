// Package taskqueue abstracts where deferred units of work run.
//
// The coordination engine only ever schedules through the Queue interface,
// which keeps the coalescing of filter-change broadcasts testable: tests
// use a Manual queue and decide exactly when a "turn" ends by draining it,
// while applications embed an Immediate or Background queue.
package taskqueue

import "sync"

// Queue accepts deferred tasks.
type Queue interface {
	// Enqueue schedules a task. When and on which goroutine it runs is
	// up to the implementation, but tasks run one at a time in FIFO
	// order.
	Enqueue(task func())
}

// Immediate returns a queue that runs each task inline on the calling
// goroutine before Enqueue returns.
func Immediate() Queue {
	return immediateQueue{}
}

type immediateQueue struct{}

func (immediateQueue) Enqueue(task func()) { task() }

// Manual is a queue that buffers tasks until Drain is called. It models
// one cooperative turn of a UI loop: everything scheduled during the turn
// runs together at the end of it.
type Manual struct {
	mu    sync.Mutex
	tasks []func()
}

// NewManual creates an empty manual queue.
func NewManual() *Manual {
	return &Manual{}
}

func (q *Manual) Enqueue(task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

// Len returns the number of buffered tasks.
func (q *Manual) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs buffered tasks in FIFO order until the queue is empty,
// including tasks enqueued by the tasks themselves.
func (q *Manual) Drain() {
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
	}
}

// Background is a queue backed by a single worker goroutine.
type Background struct {
	tasks chan func()
	done  chan struct{}

	closeOnce sync.Once
}

// NewBackground starts the worker goroutine.
func NewBackground() *Background {
	q := &Background{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(q.done)
		for task := range q.tasks {
			task()
		}
	}()

	return q
}

func (q *Background) Enqueue(task func()) {
	defer func() {
		// Enqueue after Close is a no-op rather than a panic.
		_ = recover()
	}()
	q.tasks <- task
}

// Close stops accepting tasks and blocks until buffered tasks finish.
func (q *Background) Close() {
	q.closeOnce.Do(func() { close(q.tasks) })
	<-q.done
}
