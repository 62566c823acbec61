package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports every configured backend and answers 503 when one is down.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := gin.H{
		"status":  "healthy",
		"service": "techplug",
		"clients": h.Hub.Clients(),
	}
	code := http.StatusOK
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			status[name] = "unhealthy"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "healthy"
	}
	c.JSON(code, status)
}
