package handlers

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 15 * time.Second

type EventsHandler struct {
	logger *zap.Logger
	hub    *notify.Hub
}

func NewEventsHandler(logger *zap.Logger, hub *notify.Hub) *EventsHandler {
	return &EventsHandler{
		logger: logger,
		hub:    hub,
	}
}

// Stream handles GET /api/notifications/stream
// @Summary      Stream de alertas de stock bajo
// @Description  Server-Sent Events: cada venta que deja una ubicación bajo el umbral emite un evento low_stock con la ubicación y el stock restante.
// @Tags         notifications
// @Produce      text/event-stream
// @Success      200
// @Router       /notifications/stream [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	id, events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("Failed to marshal event", zap.Error(err))
				return true
			}
			c.SSEvent("low_stock", string(payload))
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
