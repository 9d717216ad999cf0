package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger reports whether the upstream catalog API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	probe Pinger
	log   zerolog.Logger
}

func NewHealthHandler(probe Pinger, logger zerolog.Logger) *HealthHandler {
	l := logger.With().Str("module", "handler").Str("component", "health").Logger()
	return &HealthHandler{probe: probe, log: l}
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/live", h.liveness)
	r.GET("/ready", h.readiness)
}

func (h *HealthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.probe.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("upstream probe failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
