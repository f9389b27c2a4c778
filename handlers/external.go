package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpres/xpres-server/internal/external"
	"github.com/xpres/xpres-server/pkg/logger"
	"github.com/xpres/xpres-server/pkg/metrics"
)

// ExternalHandler relays JSON from a caller-chosen URL. It is an open proxy.
type ExternalHandler struct {
	fetcher    *external.Fetcher
	defaultURL string
}

func NewExternalHandler(f *external.Fetcher, defaultURL string) *ExternalHandler {
	return &ExternalHandler{fetcher: f, defaultURL: defaultURL}
}

func (h *ExternalHandler) Register(r gin.IRoutes) {
	r.GET("/external", h.External)
}

// External fetches ?url= (or the default URL) and wraps the body as data.
// Upstream error statuses are relayed; transport failures become 502.
func (h *ExternalHandler) External(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		url = h.defaultURL
	}

	data, err := h.fetcher.Fetch(context.WithoutCancel(c.Request.Context()), url)
	if err != nil {
		status := http.StatusBadGateway
		outcome := "unreachable"
		var se *external.StatusError
		if errors.As(err, &se) {
			status, outcome = se.StatusCode, "upstream_error"
		}
		metrics.ExternalFetches.WithLabelValues(outcome).Inc()
		logger.Warnf("external: GET %s: %v", url, err)
		errorJSON(c, status, "could not fetch external JSON", err)
		return
	}
	metrics.ExternalFetches.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"source": "external", "url": url, "data": data})
}
