package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/xpres/xpres-server/internal/received"
	"github.com/xpres/xpres-server/internal/received/service"
	"github.com/xpres/xpres-server/pkg/logger"
	"github.com/xpres/xpres-server/pkg/metrics"
)

// RegisterReceivedRoutes wires POST /receive-mongo and GET /received-mongo.
func RegisterReceivedRoutes(r gin.IRoutes, svc service.Service) {
	r.POST("/receive-mongo", func(c *gin.Context) {
		// only application/json bodies count; anything else is treated as missing
		if c.ContentType() != binding.MIMEJSON {
			c.JSON(http.StatusBadRequest, gin.H{"error": received.ErrEmptyPayload.Error()})
			return
		}
		body, err := c.GetRawData()
		if err != nil {
			logger.Warnf("receive-mongo: reading body: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": received.ErrEmptyPayload.Error(), "details": err.Error()})
			return
		}
		payload, err := received.ParsePayload(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": received.ErrEmptyPayload.Error()})
			return
		}

		// client disconnects do not abort the write
		ctx := context.WithoutCancel(c.Request.Context())
		id, err := svc.Insert(ctx, payload)
		if errors.Is(err, service.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "MongoDB is not available. Make sure it is running."})
			return
		}
		if err != nil {
			logger.Errorf("receive-mongo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save to MongoDB", "details": err.Error()})
			return
		}
		metrics.Received.WithLabelValues("mongo").Inc()
		c.JSON(http.StatusCreated, gin.H{"message": "JSON saved to MongoDB", "_id": id})
	})

	// The listing is a bare array, unlike every other response.
	r.GET("/received-mongo", func(c *gin.Context) {
		docs, err := svc.List(context.WithoutCancel(c.Request.Context()))
		if errors.Is(err, service.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "MongoDB is not available."})
			return
		}
		if err != nil {
			logger.Errorf("received-mongo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read MongoDB", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, docs)
	})
}
