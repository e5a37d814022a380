package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/internal/stats"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
)

type HealthHandler struct {
	db     *database.DB
	cache  *services.CacheService
	stream *stats.StreamRecorder
}

// NewHealthHandler accepts nil cache and stream when Redis is not configured.
func NewHealthHandler(db *database.DB, cache *services.CacheService, stream *stats.StreamRecorder) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		stream: stream,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "gridiron-sim",
	})
}

// GetReady returns 200 only when the database answers. Redis is optional
// and reported but never fails readiness.
func (h *HealthHandler) GetReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["database"] = err.Error()
		ready = false
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = err.Error()
		} else {
			checks["cache"] = "ok"
		}
	}
	if h.stream != nil {
		checks["event_stream"] = h.stream.State().String()
	}

	status := http.StatusOK
	label := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		label = "not_ready"
	}
	c.JSON(status, gin.H{
		"status": label,
		"checks": checks,
	})
}
