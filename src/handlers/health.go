package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/repositories"
)

var startTime = time.Now()

// Version is reported by /info
const Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	api repositories.HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(api repositories.HealthChecker) *HealthHandler {
	return &HealthHandler{
		api: api,
	}
}

func (hh *HealthHandler) ping(c *gin.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := hh.api.Ping(ctx)
	return time.Since(start), err
}

// HandleHealth returns health status with an API reachability check
func (hh *HealthHandler) HandleHealth(c *gin.Context) {
	apiLatency, err := hh.ping(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"api":    "unreachable",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"api":         "reachable",
		"api_latency": apiLatency.String(),
		"uptime":      time.Since(startTime).String(),
	})
}

// HandleInfo returns service information
func (hh *HealthHandler) HandleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "jwt-auth-web",
		"version": Version,
		"status":  "running",
		"uptime":  time.Since(startTime).String(),
	})
}

// HandleReady returns readiness status (for load balancers)
func (hh *HealthHandler) HandleReady(c *gin.Context) {
	if _, err := hh.ping(c); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ready": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ready": true,
	})
}
