// File: handlers/health.go
package handlers

import (
	"net/http"
	"time"

	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
)

// HealthReporter exposes the latest backend health snapshot.
type HealthReporter interface {
	Status() utils.HealthStatus
}

type HealthHandler struct {
	Monitor HealthReporter
	Started time.Time
}

func NewHealthHandler(monitor HealthReporter) *HealthHandler {
	return &HealthHandler{Monitor: monitor, Started: time.Now()}
}

// HealthHandler reports 200 while mongo is reachable and 503 otherwise.
func (h *HealthHandler) HealthHandler(c *gin.Context) {
	status := h.Monitor.Status()
	code := http.StatusOK
	state := "OK"
	if !status.Mongo {
		code = http.StatusServiceUnavailable
		state = "DEGRADED"
	}
	c.JSON(code, gin.H{
		"status":    state,
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.Started).Round(time.Second).String(),
		"services":  status,
	})
}

// IndexHandler lists the API surface.
func (h *HealthHandler) IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Dream Decol API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"bookings":   "/api/booking",
			"ratings":    "/api/ratings",
			"products":   "/api/products",
			"activities": "/api/activities",
			"contact":    "/api/contact",
			"config":     "/api/config",
			"admin":      "/api/admin",
			"upload":     "/upload",
			"health":     "/health",
		},
	})
}
