package disk

import (
	"sync"

	"github.com/hostwatch/diskwatch/pkg/source"
)

// Cache holds the authoritative in-memory Snapshot for the disk source.
// The Producer is the sole writer; Handle reads never block the writer
// for more than a short critical section.
type Cache struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Store replaces the current snapshot.
func (c *Cache) Store(snap Snapshot) {
	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()
}

// Snapshot returns a cloned copy of the current state; the caller may not
// observe any later mutation.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	disks := make([]Disk, len(c.snapshot.Disks))
	copy(disks, c.snapshot.Disks)
	return Snapshot{Disks: disks}
}

// Handle is the source.ReadHandle exposed to the dispatcher.
type Handle struct {
	cache *Cache
}

// NewHandle wraps a Cache as a source.ReadHandle for SourceId Disk.
func NewHandle(cache *Cache) *Handle {
	return &Handle{cache: cache}
}

// Snapshot implements source.ReadHandle.
func (h *Handle) Snapshot() source.Snapshot {
	return h.cache.Snapshot()
}

// ID implements source.ReadHandle.
func (h *Handle) ID() source.ID {
	return source.Disk
}
