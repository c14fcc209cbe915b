// Package dispatcher implements the coordination heart of the pipeline:
// it turns Event Queue wakeups into latest-value-cache writes and
// per-source broadcasts.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hostwatch/diskwatch/pkg/convert"
	"github.com/hostwatch/diskwatch/pkg/eventqueue"
	"github.com/hostwatch/diskwatch/pkg/log"
	"github.com/hostwatch/diskwatch/pkg/metrics"
	"github.com/hostwatch/diskwatch/pkg/source"
)

// Dispatcher is the single task that drains the Event Queue, resolves
// events to wire payloads via the Source's snapshot handle and the
// Converter, retains the latest value per SourceId, and broadcasts it.
//
// Construct with New, bind the Event Queue with BindQueue, register every
// ReadHandle with Register, then run it with Run.
type Dispatcher struct {
	logger zerolog.Logger
	queue  *eventqueue.Queue

	handles    [source.Count]source.ReadHandle
	registered [source.Count]bool
	cache      *latestValueCache
	fanouts    [source.Count]*fanout
}

// New creates a Dispatcher with no bound queue and no registered sources.
func New() *Dispatcher {
	d := &Dispatcher{
		logger: log.WithComponent("dispatcher"),
		cache:  newLatestValueCache(),
	}
	for id := 0; id < source.Count; id++ {
		d.fanouts[id] = newFanout(source.ID(id).String())
	}
	return d
}

// BindQueue attaches the Event Queue this Dispatcher drains. Must be
// called once before Run.
func (d *Dispatcher) BindQueue(q *eventqueue.Queue) {
	d.queue = q
}

// inRange reports whether id falls within the compile-time SourceId
// universe, guarding every array access below against out-of-range or
// malformed ids (e.g. from a corrupt Event) instead of panicking.
func inRange(id source.ID) bool {
	return id >= 0 && int(id) < source.Count
}

// Register binds a ReadHandle to its SourceId. Panics if that SourceId
// already has a registered Source — a registration collision is fatal at
// startup, never a runtime condition to recover from.
func (d *Dispatcher) Register(handle source.ReadHandle) {
	id := handle.ID()
	if !inRange(id) {
		panic(fmt.Sprintf("dispatcher: source id %d out of range", id))
	}
	if d.registered[id] {
		panic(fmt.Sprintf("dispatcher: source %s already registered", id))
	}
	d.handles[id] = handle
	d.registered[id] = true
	metrics.SourcesRegistered.Inc()
}

// Snapshot returns the latest wire payload cached for id, for a
// Subscription Stream's initial read. ok is false if the Dispatcher has
// never written a value for id.
func (d *Dispatcher) Snapshot(id source.ID) (convert.WirePayload, bool) {
	if !inRange(id) {
		return nil, false
	}
	return d.cache.get(id)
}

// Subscribe registers a new listener on id's fan-out channel and returns
// a receive-only channel plus a cancel func the caller must invoke
// exactly once, normally via defer, when it stops reading. Subscribing to
// an out-of-range id returns a channel that is immediately closed.
func (d *Dispatcher) Subscribe(id source.ID) (<-chan convert.WirePayload, func()) {
	if !inRange(id) {
		ch := make(chan convert.WirePayload)
		close(ch)
		return ch, func() {}
	}

	f := d.fanouts[id]
	token, ch := f.subscribe()
	metrics.SubscribersActive.WithLabelValues(id.String()).Inc()

	cancel := func() {
		f.unsubscribe(token)
		metrics.SubscribersActive.WithLabelValues(id.String()).Dec()
	}
	return ch, cancel
}

// RegisteredSources reports which SourceIds have a Source bound via
// Register, for readiness reporting.
func (d *Dispatcher) RegisteredSources() []source.ID {
	var ids []source.ID
	for id := 0; id < source.Count; id++ {
		if d.registered[id] {
			ids = append(ids, source.ID(id))
		}
	}
	return ids
}

// Published reports whether id has a cached wire payload, i.e. whether the
// Dispatcher has handled at least one event for it since startup.
func (d *Dispatcher) Published(id source.ID) bool {
	if !inRange(id) {
		return false
	}
	_, ok := d.cache.get(id)
	return ok
}

// Run drives the Idle/Draining state machine: wait for a queue wakeup,
// drain and handle every pending event, repeat, until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info().Msg("dispatcher starting")
	defer d.logger.Info().Msg("dispatcher stopped")

	for {
		if err := d.queue.Notified(ctx); err != nil {
			return
		}
		d.drain()
	}
}

func (d *Dispatcher) drain() {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.DispatcherDrainDuration)

	for _, e := range d.queue.Drain() {
		d.handleEvent(e)
	}
}

func (d *Dispatcher) handleEvent(e eventqueue.Event) {
	id := e.SourceID

	if !inRange(id) {
		d.logger.Debug().Int("source_id", int(id)).Msg("event for out-of-range source, skipping")
		return
	}

	if !d.registered[id] {
		d.logger.Debug().Str("source_id", id.String()).Msg("event for unregistered source, skipping")
		return
	}

	snapshot := d.handles[id].Snapshot()

	payload, ok := convert.Convert(id, snapshot)
	if !ok {
		d.logger.Debug().Str("source_id", id.String()).Msg("converter produced no wire payload")
		return
	}

	// Write the cache, then broadcast, with no intervening await on any
	// external resource: a reader that observes the broadcast is
	// guaranteed to find at least this value in the cache.
	d.cache.set(id, payload)
	metrics.DispatcherEventsTotal.WithLabelValues(id.String()).Inc()
	d.fanouts[id].broadcast(payload)
}
