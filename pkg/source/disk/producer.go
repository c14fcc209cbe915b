package disk

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/hostwatch/diskwatch/pkg/log"
	"github.com/hostwatch/diskwatch/pkg/metrics"
	"github.com/hostwatch/diskwatch/pkg/source"
)

// scanInterval bounds how stale the inventory can get between hotplug
// events; fsnotify handles the common case, the ticker is the fallback.
const scanInterval = 10 * time.Second

// Producer drives the disk Source: it performs an initial synchronous
// scan, primes the pipeline with one Event, then alternates between a
// periodic rescan and hotplug notifications until ctx is cancelled.
type Producer struct {
	cache  *Cache
	pusher source.Pusher
	logger zerolog.Logger
}

// NewProducer builds a Producer publishing into cache and notifying
// pusher (ordinarily an *eventqueue.Queue) of every change.
func NewProducer(cache *Cache, pusher source.Pusher) *Producer {
	return &Producer{
		cache:  cache,
		pusher: pusher,
		logger: log.WithComponent("source.disk"),
	}
}

// Run implements source.Producer.
func (p *Producer) Run(ctx context.Context) {
	p.logger.Info().Msg("disk source starting")
	defer p.logger.Info().Msg("disk source stopped")

	p.scanAndPublish()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Warn().Err(err).Msg("hotplug watcher unavailable, polling only")
		p.loop(ctx, nil)
		return
	}
	defer watcher.Close()

	for _, dir := range []string{sysBlockDir, byLabelDir, byUUIDDir} {
		if err := watcher.Add(dir); err != nil {
			p.logger.Debug().Err(err).Str("dir", dir).Msg("could not watch directory")
		}
	}

	p.loop(ctx, watcher)
}

func (p *Producer) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	var errs chan error
	if watcher != nil {
		events = watcher.Events
		errs = watcher.Errors
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			p.scanAndPublish()

		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			p.scanAndPublish()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			p.logger.Debug().Err(err).Msg("hotplug watcher error")
		}
	}
}

func (p *Producer) scanAndPublish() {
	disks, err := scanDisks()
	if err != nil {
		p.logger.Warn().Err(err).Msg("disk scan failed, retaining previous snapshot")
		return
	}

	p.cache.Store(Snapshot{Disks: disks})
	metrics.DisksTotal.Set(float64(len(disks)))
	p.pusher.Push(source.Disk)
}
