// Package coalesce collapses bursts of triggers into a single flush.
//
// The coordination engine arms a Coalescer every time a chart's filter
// changes. The first arm in a turn schedules one flush on the task queue;
// arming again before that flush runs is a no-op. This is how several
// synchronous filter mutations inside one interaction produce exactly one
// redraw broadcast instead of one per mutation.
package coalesce

import (
	"sync"

	"github.com/chartlink/chartlink/internal/observability"
	"github.com/chartlink/chartlink/internal/taskqueue"
)

// Coalescer schedules at most one pending flush at a time.
type Coalescer struct {
	mu sync.Mutex

	queue  taskqueue.Queue
	logger *observability.Logger

	// armed is true while a flush is scheduled but has not yet run.
	armed bool

	// stopped makes all future arms no-ops.
	stopped bool
}

// New creates a Coalescer that schedules flushes on the given queue.
func New(queue taskqueue.Queue, logger *observability.Logger) *Coalescer {
	return &Coalescer{queue: queue, logger: logger}
}

// Arm schedules flush to run on the queue unless one is already pending.
//
// The flush that eventually runs is the one passed to the arming call
// that scheduled it; callers are expected to always pass the same
// function.
func (c *Coalescer) Arm(flush func()) {
	c.mu.Lock()
	if c.stopped || c.armed {
		c.mu.Unlock()
		return
	}
	c.armed = true
	c.mu.Unlock()

	c.queue.Enqueue(func() {
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return
		}
		c.armed = false
		c.mu.Unlock()

		c.logger.Debug("coalesce: flushing")
		flush()
	})
}

// Armed reports whether a flush is scheduled and has not run yet.
func (c *Coalescer) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Stop makes all future and pending operations no-ops.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}
