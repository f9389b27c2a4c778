package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpres/xpres-server/internal/database"
)

const indexMessage = "xpres server running. Open /index.html for the UI or use /internal, /internal-async, /external, /receive, /receive-mongo, /received-mongo"

// Index answers GET / with a short description of the available routes.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": indexMessage})
}

// NotFound is the terminal handler for requests no route or asset matched.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// Health is a liveness probe.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}

// Ready reports 200 only once the MongoDB handle is connected. The non-database
// routes keep working either way.
func Ready(h *database.Handle, started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps := map[string]bool{"mongo": h.Connected()}
		status, code := "ready", http.StatusOK
		if !deps["mongo"] {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(started).String()})
	}
}
