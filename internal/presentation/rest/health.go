// Package rest serves the service's HTTP operational surface: liveness and
// readiness probes plus the Prometheus metrics endpoint. The business API is
// gRPC only.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable. pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	serviceName string
	db          Pinger
	metrics     http.Handler
	startedAt   time.Time
	logger      *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil when no
// database readiness check applies; metrics may be nil when the exporter is
// disabled.
func NewHealthHandler(serviceName string, db Pinger, metrics http.Handler, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		db:          db,
		metrics:     metrics,
		startedAt:   time.Now(),
		logger:      logger,
	}
}

// healthResponse is the JSON response for health check endpoints.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// readinessResponse is the JSON response for the readiness endpoint.
type readinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers the operational endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Liveness)
	mux.HandleFunc("GET /readyz", h.Readiness)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
}

// Liveness handles the liveness probe endpoint (GET /healthz).
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Service: h.serviceName,
		Uptime:  time.Since(h.startedAt).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Readiness handles the readiness probe endpoint (GET /readyz). It answers
// 503 while the database is unreachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := "ok"
	code := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", "database", "error", err)
			checks["database"] = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	resp := readinessResponse{
		Status:  status,
		Service: h.serviceName,
		Checks:  checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
