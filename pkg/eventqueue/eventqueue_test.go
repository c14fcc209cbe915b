package eventqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwatch/diskwatch/pkg/source"
)

func TestPushThenDrainPreservesOrder(t *testing.T) {
	q := New()

	q.Push(source.Disk)
	q.Push(source.Disk)
	q.Push(source.Disk)

	drained := q.Drain()
	require.Len(t, drained, 3)
	for _, e := range drained {
		assert.Equal(t, source.Disk, e.SourceID)
	}

	assert.Empty(t, q.Drain())
}

func TestPushCoalescesWakeups(t *testing.T) {
	q := New()

	// Several pushes before anyone waits on Notified must still leave at
	// most one pending wakeup, never block, and never lose an event.
	for i := 0; i < 5; i++ {
		q.Push(source.Disk)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, q.Notified(ctx))

	// The coalesced wakeup is consumed; a second wait with no new push
	// times out rather than firing again.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	err := q.Notified(ctx2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	drained := q.Drain()
	assert.Len(t, drained, 5)
}

func TestNotifiedRespectsContext(t *testing.T) {
	q := New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := q.Notified(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDrainLeavesQueueEmpty(t *testing.T) {
	q := New()
	q.Push(source.Disk)

	first := q.Drain()
	require.Len(t, first, 1)

	second := q.Drain()
	assert.Empty(t, second)
}

func TestPushAfterDrainReArmsNotify(t *testing.T) {
	q := New()
	q.Push(source.Disk)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, q.Notified(ctx))

	q.Drain()
	q.Push(source.Disk)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	require.NoError(t, q.Notified(ctx2))
}
