/*
Package metrics provides Prometheus metrics collection and exposition for diskwatchd.

It instruments the core event-propagation pipeline: event queue depth, dispatcher
throughput, per-source broadcast counts and lag, and active subscriber counts.
Metrics are exposed via an HTTP handler for scraping by a Prometheus server.
*/
package metrics
