package httpx

import (
	"context"
	"io"
	"net/http"
	"time"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for readiness/liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// Pinger is the minimal health probe for a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

const healthCheckTimeout = 2 * time.Second

// HealthHandlers probes the backing stores on each request. A failed probe
// turns the response into 503 with the failing component named.
type HealthHandlers struct {
	Checks map[string]Pinger
}

// Health serves GET/HEAD /healthz.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if len(h.Checks) == 0 {
		healthHandler(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.Checks))
	for name, check := range h.Checks {
		if err := check.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			components[name] = err.Error()
			continue
		}
		components[name] = "ok"
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	WriteJSON(w, status, map[string]any{
		"status":     overall,
		"components": components,
	})
}
