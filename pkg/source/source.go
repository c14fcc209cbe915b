// Package source defines the closed universe of resource-type tags and the
// narrow interfaces a Source (a Producer/ReadHandle pair) must satisfy to be
// registered with the dispatcher.
package source

import "context"

// ID is a small enumerated tag identifying a resource type. The universe is
// closed and known at build time.
type ID int

const (
	// preserved is the zero value of ID. It is never a valid registration
	// target: a zero-valued ID reaching Register or Convert means some
	// caller never set it, not that it refers to a real source. An older
	// revision of this pipeline bound the Disk source to the zero tag
	// directly, so a stray default ID silently behaved like a real
	// subscription; that bug class is closed off by reserving the zero
	// value here instead of reusing it.
	preserved ID = iota

	// Disk identifies the block-storage inventory source.
	Disk

	numIDs
)

// Count is the compile-time number of known source IDs, including the
// reserved zero value.
const Count = int(numIDs)

func (id ID) String() string {
	switch id {
	case preserved:
		return "_preserved"
	case Disk:
		return "disk"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable, cheaply-clonable value representing a source's
// state at one instant. Each SourceId has its own concrete snapshot type;
// this is a marker interface so the dispatcher can handle any of them
// uniformly before the per-source Converter narrows it back down.
type Snapshot interface{}

// ReadHandle is the read side of a Source: a cheaply clonable handle that
// returns the current snapshot without blocking for more than a bounded,
// short interval and never mutates state.
type ReadHandle interface {
	// Snapshot returns the current state, cloned to an owned value.
	Snapshot() Snapshot
	// ID returns the SourceId this handle serves, constant for its lifetime.
	ID() ID
}

// Pusher is the narrow capability a Producer needs to notify the dispatcher
// that its source has new data. It is satisfied by *eventqueue.Queue.
type Pusher interface {
	Push(id ID)
}

// Producer owns the mutable state for one SourceId and drives it until ctx
// is cancelled. It must push an Event for its own ID on every mutation, and
// should perform one synchronous initial population and emit one priming
// Event before entering its steady-state loop.
type Producer interface {
	Run(ctx context.Context)
}
