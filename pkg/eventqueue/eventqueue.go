// Package eventqueue buffers lightweight change hints from Sources and
// wakes the dispatcher at most once per outstanding batch.
package eventqueue

import (
	"context"
	"sync"

	"github.com/hostwatch/diskwatch/pkg/metrics"
	"github.com/hostwatch/diskwatch/pkg/source"
)

// QLEN is the advisory capacity hint for the FIFO; the queue grows past it
// under sustained load rather than dropping events.
const QLEN = 10

// Event is a tag-only hint that the named source has new data.
type Event struct {
	SourceID source.ID
}

// Queue is a mutex-protected FIFO of Events paired with a single-slot
// wakeup signal. The zero value is not usable; construct with New.
type Queue struct {
	mu     sync.Mutex
	events []Event
	notify chan struct{}
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{
		events: make([]Event, 0, QLEN),
		notify: make(chan struct{}, 1),
	}
}

// Push appends an event and signals the wakeup semaphore with try-send
// semantics: if a wakeup is already pending, this one is dropped. Safe to
// call from any goroutine; never blocks.
func (q *Queue) Push(id source.ID) {
	q.mu.Lock()
	q.events = append(q.events, Event{SourceID: id})
	depth := len(q.events)
	q.mu.Unlock()

	metrics.EventQueueDepth.Set(float64(depth))

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Drain atomically removes and returns all queued events in insertion
// order, leaving the queue empty. It does not consume or arm the wakeup
// signal.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	drained := q.events
	q.events = make([]Event, 0, QLEN)

	metrics.EventQueueDepth.Set(0)
	return drained
}

// Notified blocks until a wakeup is signalled, consuming it, or until ctx
// is done. Exactly one dispatcher should call Notified at a time.
func (q *Queue) Notified(ctx context.Context) error {
	select {
	case <-q.notify:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
