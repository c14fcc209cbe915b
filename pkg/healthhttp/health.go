// Package healthhttp serves liveness, readiness, and Prometheus metrics
// endpoints for diskwatchd over plain HTTP, separate from the gRPC API.
package healthhttp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hostwatch/diskwatch/pkg/dispatcher"
	"github.com/hostwatch/diskwatch/pkg/metrics"
)

// Version is set at build time via -ldflags; it defaults to "dev".
var Version = "dev"

// Server provides HTTP health check endpoints.
type Server struct {
	dispatcher *dispatcher.Dispatcher
	mux        *http.ServeMux
}

// NewServer creates a health check HTTP server backed by d's registration
// and cache state.
func NewServer(d *dispatcher.Dispatcher) *Server {
	mux := http.NewServeMux()
	hs := &Server{dispatcher: d, mux: mux}

	mux.HandleFunc("/health", hs.healthHandler)
	mux.HandleFunc("/ready", hs.readyHandler)
	mux.Handle("/metrics", metrics.Handler())

	return hs
}

// Start starts the health check HTTP server. It blocks until the server
// stops or fails to listen.
func (hs *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      hs.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// Handler returns the underlying HTTP handler, for embedding or testing.
func (hs *Server) Handler() http.Handler {
	return hs.mux
}

// HealthResponse is the /health liveness response body.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// ReadyResponse is the /ready readiness response body.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// healthHandler is a liveness check: 200 if the process is alive.
func (hs *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// readyHandler reports whether every registered source has published at
// least one snapshot since startup.
func (hs *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]string)
	ready := true
	var message string

	ids := hs.dispatcher.RegisteredSources()
	if len(ids) == 0 {
		checks["dispatcher"] = "no sources registered"
		ready = false
		message = "No sources registered"
	}

	for _, id := range ids {
		if hs.dispatcher.Published(id) {
			checks[id.String()] = "published"
		} else {
			checks[id.String()] = "awaiting first snapshot"
			ready = false
			if message == "" {
				message = "Waiting for initial source scan"
			}
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "not ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := ReadyResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
		Message:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}
