// Package health provides health check endpoints for the user directory.
package health

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// HealthCheck manages health check functionality. The store is in-process, so
// readiness only reflects whether the service has finished wiring.
type HealthCheck struct {
	logger *zap.Logger
	mu     sync.RWMutex
	ready  bool
}

// NewHealthCheck creates a new HealthCheck instance.
func NewHealthCheck(logger *zap.Logger) *HealthCheck {
	return &HealthCheck{logger: logger}
}

// LivenessResponse represents the response for the liveness check.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse represents the response for the readiness check.
type ReadinessResponse struct {
	Status string `json:"status"`
}

// LivenessHandler handles GET /health requests.
// Returns 200 OK if the process is running.
func (hc *HealthCheck) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(LivenessResponse{Status: "ok"})
}

// ReadinessHandler handles GET /ready requests.
func (hc *HealthCheck) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if hc.IsReady() {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ReadinessResponse{Status: "ready"})
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	json.NewEncoder(w).Encode(ReadinessResponse{Status: "not_ready"})
}

// IsReady returns the current readiness status.
func (hc *HealthCheck) IsReady() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.ready
}

// SetReady sets the readiness status.
func (hc *HealthCheck) SetReady(ready bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.ready = ready
}
