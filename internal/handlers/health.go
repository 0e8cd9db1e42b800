package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks connectivity to a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds with service health information.
type HealthHandler struct {
	Database Pinger
}

const healthCheckTimeout = 2 * time.Second

// Handle implements GET /healthz.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	payload := map[string]string{
		"status": "ok",
	}

	if h.Database != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()

		if err := h.Database.Ping(pingCtx); err != nil {
			payload["status"] = "degraded"
			payload["database"] = err.Error()
			respondJSON(ctx, w, http.StatusServiceUnavailable, payload)
			return
		}
		payload["database"] = "ok"
	}

	respondJSON(ctx, w, http.StatusOK, payload)
}
