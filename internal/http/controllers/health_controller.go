package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/hellopost/internal/http/errors"
	"github.com/dropDatabas3/hellopost/internal/observability/logger"
)

// Pinger is what the health controller needs from the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController handles the liveness and readiness probes.
type HealthController struct {
	store Pinger
}

// NewHealthController creates the health controller.
func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Register mounts the probe routes.
func (c *HealthController) Register(r chi.Router) {
	r.Get("/healthz", c.healthz)
	r.Get("/readyz", c.readyz)
}

// healthz reports process liveness only.
func (c *HealthController) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyz verifies the store connection.
func (c *HealthController) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.Ping(ctx); err != nil {
		logger.From(r.Context()).Warn("readiness ping failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("store unreachable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
