package realtime

import (
	"encoding/json"
	"io"
	"time"

	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Stream is the SSE endpoint. Each connected client receives every change
// notice as an event named "change"; the payload is the JSON notice.
func (h *Handler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch, cancel := h.hub.Subscribe()
	defer cancel()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case n, ok := <-ch:
			if !ok {
				return false
			}
			payload, err := json.Marshal(n)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(payload))
			return true
		}
	})
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler, jwtSecret string) {
	stream := r.Group("/stream")
	stream.Use(middleware.AuthMiddleware(jwtSecret))
	{
		stream.GET("", h.Stream)
	}
}
