package api

import (
	"net/http"

	"github.com/alexanderramin/proposal/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the middleware stack and every route.
func NewRouter(h *Handler, health *HealthHandler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS(corsOrigins))

	health.RegisterHealth(r)
	h.RegisterRoutes(r)
	h.RegisterSessionRoutes(r)
	return r
}
