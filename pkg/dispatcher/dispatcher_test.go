package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiproto "github.com/hostwatch/diskwatch/api/proto"
	"github.com/hostwatch/diskwatch/pkg/eventqueue"
	"github.com/hostwatch/diskwatch/pkg/source"
	"github.com/hostwatch/diskwatch/pkg/source/disk"
)

type fakeHandle struct {
	id source.ID

	mu       sync.Mutex
	snapshot source.Snapshot
}

func newFakeHandle(id source.ID) *fakeHandle {
	return &fakeHandle{id: id}
}

func (h *fakeHandle) ID() source.ID { return h.id }

func (h *fakeHandle) set(snap source.Snapshot) {
	h.mu.Lock()
	h.snapshot = snap
	h.mu.Unlock()
}

func (h *fakeHandle) Snapshot() source.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot
}

func diskSnapshotWith(name string) disk.Snapshot {
	return disk.Snapshot{Disks: []disk.Disk{{Name: name}}}
}

func assertDiskName(t *testing.T, payload interface{}, name string) {
	t.Helper()
	resp, ok := payload.(*apiproto.DiskListAndWatchResponse)
	require.True(t, ok)
	require.Len(t, resp.Disks, 1)
	assert.Equal(t, name, resp.Disks[0].Name)
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *eventqueue.Queue, *fakeHandle) {
	t.Helper()
	d := New()
	q := eventqueue.New()
	d.BindQueue(q)

	h := newFakeHandle(source.Disk)
	d.Register(h)

	return d, q, h
}

func runDispatcher(t *testing.T, d *Dispatcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("dispatcher did not terminate after context cancellation")
		}
	})
	return cancel
}

func TestRegisterDuplicateSourceIDPanics(t *testing.T) {
	d := New()
	d.Register(newFakeHandle(source.Disk))

	assert.Panics(t, func() {
		d.Register(newFakeHandle(source.Disk))
	})
}

func TestSnapshotEmptyBeforeAnyEvent(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	_, ok := d.Snapshot(source.Disk)
	assert.False(t, ok)
}

func TestDispatcherWritesCacheAndBroadcasts(t *testing.T) {
	d, q, h := newTestDispatcher(t)
	runDispatcher(t, d)

	ch, cancel := d.Subscribe(source.Disk)
	defer cancel()

	h.set(diskSnapshotWith("sda"))
	q.Push(source.Disk)

	select {
	case payload := <-ch:
		assertDiskName(t, payload, "sda")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}

	cached, ok := d.Snapshot(source.Disk)
	require.True(t, ok)
	assertDiskName(t, cached, "sda")
}

func TestDispatcherCoalescesBurstOfPushes(t *testing.T) {
	d, q, h := newTestDispatcher(t)
	runDispatcher(t, d)

	ch, cancel := d.Subscribe(source.Disk)
	defer cancel()

	for i := 0; i < 5; i++ {
		h.set(diskSnapshotWith("sda-final"))
		q.Push(source.Disk)
	}

	// Drain whatever broadcasts arrive; regardless of how many there
	// are, the last one observed (and the cache) must reflect the final
	// snapshot taken after the 5th push.
	var last interface{}
	timeout := time.After(500 * time.Millisecond)
drain:
	for {
		select {
		case payload := <-ch:
			last = payload
		case <-timeout:
			break drain
		}
	}

	require.NotNil(t, last)
	assertDiskName(t, last, "sda-final")

	cached, ok := d.Snapshot(source.Disk)
	require.True(t, ok)
	assertDiskName(t, cached, "sda-final")
}

func TestLateSubscriberSeesOnlyLatestNotHistory(t *testing.T) {
	d, q, h := newTestDispatcher(t)
	runDispatcher(t, d)

	h.set(diskSnapshotWith("v1"))
	q.Push(source.Disk)

	// Give the dispatcher a tick to process v1 before the late
	// subscriber connects, so it never appears on the fan-out channel.
	time.Sleep(50 * time.Millisecond)

	h.set(diskSnapshotWith("v2"))
	q.Push(source.Disk)
	time.Sleep(50 * time.Millisecond)

	cached, ok := d.Snapshot(source.Disk)
	require.True(t, ok)
	assertDiskName(t, cached, "v2")

	ch, cancel := d.Subscribe(source.Disk)
	defer cancel()

	select {
	case payload := <-ch:
		t.Fatalf("late subscriber should not observe historical broadcast, got %v", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnregisteredSourceEventIsSkippedWithoutCrashing(t *testing.T) {
	d, q, h := newTestDispatcher(t)
	runDispatcher(t, d)

	ch, cancel := d.Subscribe(source.Disk)
	defer cancel()

	q.Push(source.ID(99)) // unregistered

	h.set(diskSnapshotWith("still-works"))
	q.Push(source.Disk)

	select {
	case payload := <-ch:
		assertDiskName(t, payload, "still-works")
	case <-time.After(time.Second):
		t.Fatal("dispatcher stalled after an unregistered-source event")
	}
}

func TestRunTerminatesOnContextCancellation(t *testing.T) {
	d := New()
	q := eventqueue.New()
	d.BindQueue(q)

	ctx, cancel := context.WithCancel(context.Background())
	var stopped int32
	go func() {
		d.Run(ctx)
		atomic.StoreInt32(&stopped, 1)
	}()

	cancel()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&stopped) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribeUnsubscribeDoesNotLeakOrPanic(t *testing.T) {
	d, q, h := newTestDispatcher(t)
	runDispatcher(t, d)

	ch, cancel := d.Subscribe(source.Disk)
	cancel()

	h.set(diskSnapshotWith("after-unsub"))
	q.Push(source.Disk)

	// The channel is closed on unsubscribe; reading it must not block
	// forever or panic.
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("unsubscribed channel was never closed")
	}
}
