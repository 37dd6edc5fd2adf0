package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	database Pinger
	cache    Pinger
	timeout  time.Duration
}

// NewHealthHandler creates a health handler. cache may be nil when no
// document cache is configured.
func NewHealthHandler(database, cache Pinger) *HealthHandler {
	return &HealthHandler{database: database, cache: cache, timeout: 5 * time.Second}
}

// Health reports the status of the API and its dependencies. An unreachable
// cache degrades the status without failing the check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checks := map[string]string{"api": "ok"}
	status := "healthy"
	statusCode := http.StatusOK

	if err := h.database.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "dependency", "database", "error", err)
		checks["database"] = "unreachable"
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "health check failed", "dependency", "cache", "error", err)
			checks["cache"] = "unreachable"
			if statusCode == http.StatusOK {
				status = "degraded"
			}
		} else {
			checks["cache"] = "ok"
		}
	}

	JSON(w, statusCode, map[string]any{"status": status, "checks": checks})
}

// RegisterHealth registers the health check route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}
