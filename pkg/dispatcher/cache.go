package dispatcher

import (
	"sync"

	"github.com/hostwatch/diskwatch/pkg/convert"
	"github.com/hostwatch/diskwatch/pkg/source"
)

// latestValueCache is the process-wide SourceId -> WirePayload map.
// Exactly one writer (the Dispatcher), many concurrent readers (each new
// Subscription Stream).
type latestValueCache struct {
	mu      sync.RWMutex
	values  [source.Count]convert.WirePayload
	present [source.Count]bool
}

func newLatestValueCache() *latestValueCache {
	return &latestValueCache{}
}

func (c *latestValueCache) set(id source.ID, payload convert.WirePayload) {
	c.mu.Lock()
	c.values[id] = payload
	c.present[id] = true
	c.mu.Unlock()
}

// get returns the latest payload published for id, or (nil, false) if the
// dispatcher has never written one.
func (c *latestValueCache) get(id source.ID) (convert.WirePayload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[id], c.present[id]
}
