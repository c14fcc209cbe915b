package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SourcesRegistered is the number of Sources bound to the Dispatcher.
	SourcesRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "diskwatchd_sources_registered",
			Help: "Number of sources registered with the dispatcher",
		},
	)

	// EventQueueDepth is the number of events waiting to be drained.
	EventQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "diskwatchd_event_queue_depth",
			Help: "Number of events currently queued for the dispatcher",
		},
	)

	// DispatcherEventsTotal counts events drained and handled by the dispatcher.
	DispatcherEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diskwatchd_dispatcher_events_total",
			Help: "Total number of events handled by the dispatcher, by source",
		},
		[]string{"source"},
	)

	// DispatcherDrainDuration measures the time spent draining one event batch.
	DispatcherDrainDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "diskwatchd_dispatcher_drain_duration_seconds",
			Help:    "Time spent draining and handling one batch of events",
			Buckets: prometheus.DefBuckets,
		},
	)

	// BroadcastsTotal counts successful fan-out sends per source.
	BroadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diskwatchd_broadcasts_total",
			Help: "Total number of values broadcast on a source's fan-out channel",
		},
		[]string{"source"},
	)

	// BroadcastLaggedTotal counts broadcasts skipped because a subscriber was lagging.
	BroadcastLaggedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diskwatchd_broadcast_lagged_total",
			Help: "Total number of broadcasts a subscriber missed due to lag",
		},
		[]string{"source"},
	)

	// SubscribersActive is the number of live subscription streams, per source.
	SubscribersActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "diskwatchd_subscribers_active",
			Help: "Number of active DiskListAndWatch subscribers, by source",
		},
		[]string{"source"},
	)

	// DisksTotal is the number of disks in the most recently published Disk snapshot.
	DisksTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "diskwatchd_disks_total",
			Help: "Number of disks in the latest published disk inventory",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SourcesRegistered,
		EventQueueDepth,
		DispatcherEventsTotal,
		DispatcherDrainDuration,
		BroadcastsTotal,
		BroadcastLaggedTotal,
		SubscribersActive,
		DisksTotal,
	)
}

// Handler returns the Prometheus HTTP handler for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
