package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/xpres/xpres-server/internal/localdata"
	"github.com/xpres/xpres-server/internal/received"
	"github.com/xpres/xpres-server/pkg/logger"
	"github.com/xpres/xpres-server/pkg/metrics"
)

// LocalHandler serves the bundled seed file and stores received payloads.
type LocalHandler struct {
	seed     *localdata.Seed
	receiver *localdata.Receiver
}

func NewLocalHandler(seed *localdata.Seed, receiver *localdata.Receiver) *LocalHandler {
	return &LocalHandler{seed: seed, receiver: receiver}
}

// Register wires /internal, /internal-async and /receive.
func (h *LocalHandler) Register(r gin.IRoutes) {
	r.GET("/internal", h.Internal)
	r.GET("/internal-async", h.InternalAsync)
	r.POST("/receive", h.Receive)
}

// cause strips the failure class so details carry only the underlying message.
func cause(err error) error {
	var le *localdata.Error
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}

// Internal returns the seed file loaded once per process.
func (h *LocalHandler) Internal(c *gin.Context) {
	data, err := h.seed.Cached()
	if err != nil {
		logger.Errorf("internal: %v", err)
		errorJSON(c, http.StatusInternalServerError, "could not load internal data", cause(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": "require", "data": data})
}

// InternalAsync re-reads the seed file on every request.
func (h *LocalHandler) InternalAsync(c *gin.Context) {
	data, err := h.seed.Fresh()
	switch {
	case errors.Is(err, localdata.ErrRead):
		errorJSON(c, http.StatusInternalServerError, localdata.ErrRead.Error(), cause(err))
	case errors.Is(err, localdata.ErrParse):
		errorJSON(c, http.StatusInternalServerError, localdata.ErrParse.Error(), cause(err))
	case err != nil:
		errorJSON(c, http.StatusInternalServerError, "could not load internal data", err)
	default:
		c.JSON(http.StatusOK, gin.H{"source": "fs.readFile", "data": data})
	}
}

// Receive persists a non-empty JSON object as received-<ms>.json.
func (h *LocalHandler) Receive(c *gin.Context) {
	if c.ContentType() != binding.MIMEJSON {
		errorJSON(c, http.StatusBadRequest, received.ErrEmptyPayload.Error(), nil)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		logger.Warnf("receive: reading body: %v", err)
		errorJSON(c, http.StatusBadRequest, received.ErrEmptyPayload.Error(), err)
		return
	}
	payload, err := received.ParsePayload(body)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, received.ErrEmptyPayload.Error(), nil)
		return
	}

	name, err := h.receiver.Save(context.WithoutCancel(c.Request.Context()), payload)
	if err != nil {
		logger.Errorf("receive: %s sink: %v", h.receiver.Sink().Kind(), err)
		errorJSON(c, http.StatusInternalServerError, "could not save JSON", err)
		return
	}
	metrics.Received.WithLabelValues(h.receiver.Sink().Kind()).Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "JSON received and saved", "file": name})
}
