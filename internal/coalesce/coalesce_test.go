package coalesce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chartlink/chartlink/internal/coalesce"
	"github.com/chartlink/chartlink/internal/observability"
	"github.com/chartlink/chartlink/internal/taskqueue"
)

func TestBurstOfArmsFlushesOnce(t *testing.T) {
	queue := taskqueue.NewManual()
	c := coalesce.New(queue, observability.NewNoOpLogger())

	flushes := 0
	flush := func() { flushes++ }

	c.Arm(flush)
	c.Arm(flush)
	c.Arm(flush)
	assert.True(t, c.Armed())

	queue.Drain()

	assert.Equal(t, 1, flushes)
	assert.False(t, c.Armed())
}

func TestArmAfterFlushSchedulesAgain(t *testing.T) {
	queue := taskqueue.NewManual()
	c := coalesce.New(queue, observability.NewNoOpLogger())

	flushes := 0
	flush := func() { flushes++ }

	c.Arm(flush)
	queue.Drain()
	c.Arm(flush)
	queue.Drain()

	assert.Equal(t, 2, flushes)
}

func TestImmediateQueueFlushesInline(t *testing.T) {
	c := coalesce.New(taskqueue.Immediate(), observability.NewNoOpLogger())

	flushes := 0
	c.Arm(func() { flushes++ })
	c.Arm(func() { flushes++ })

	// Inline execution means each arm flushes before the next one.
	assert.Equal(t, 2, flushes)
}

func TestStopMakesArmsNoOps(t *testing.T) {
	queue := taskqueue.NewManual()
	c := coalesce.New(queue, observability.NewNoOpLogger())

	c.Stop()
	c.Arm(func() { t.Fatal("flush ran after Stop") })
	queue.Drain()

	assert.False(t, c.Armed())
}

func TestStopCancelsAPendingFlush(t *testing.T) {
	queue := taskqueue.NewManual()
	c := coalesce.New(queue, observability.NewNoOpLogger())

	c.Arm(func() { t.Fatal("flush ran after Stop") })
	c.Stop()
	queue.Drain()
}
