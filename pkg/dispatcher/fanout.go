package dispatcher

import (
	"sync"

	"github.com/hostwatch/diskwatch/pkg/convert"
	"github.com/hostwatch/diskwatch/pkg/metrics"
)

// fanoutCapacity is deliberately small: any subscriber lag is recovered
// from the latest-value cache on the next update, so the buffer must not
// be grown to "catch up".
const fanoutCapacity = 2

// fanout is the FanoutChannel for one SourceId: a best-effort broadcast to
// dynamically registered subscribers, each with its own small buffer so
// one lagging subscriber never blocks another or the Dispatcher.
type fanout struct {
	sourceName string

	mu          sync.Mutex
	subscribers map[int]chan convert.WirePayload
	nextID      int
}

func newFanout(sourceName string) *fanout {
	return &fanout{
		sourceName:  sourceName,
		subscribers: make(map[int]chan convert.WirePayload),
	}
}

// subscribe registers a new subscriber and returns its channel and a
// token to unsubscribe with.
func (f *fanout) subscribe() (token int, ch <-chan convert.WirePayload) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token = f.nextID
	f.nextID++
	c := make(chan convert.WirePayload, fanoutCapacity)
	f.subscribers[token] = c
	return token, c
}

func (f *fanout) unsubscribe(token int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.subscribers[token]; ok {
		delete(f.subscribers, token)
		close(c)
	}
}

// broadcast delivers payload to every subscriber without blocking. A
// subscriber whose buffer is full is skipped for this value; it is
// guaranteed to recover to "latest" on the next broadcast or by reading
// the latest-value cache.
func (f *fanout) broadcast(payload convert.WirePayload) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.subscribers) == 0 {
		return
	}

	for _, c := range f.subscribers {
		select {
		case c <- payload:
			metrics.BroadcastsTotal.WithLabelValues(f.sourceName).Inc()
		default:
			metrics.BroadcastLaggedTotal.WithLabelValues(f.sourceName).Inc()
		}
	}
}
