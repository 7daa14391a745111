package transport

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/solomonczyk/autoservice/pkg/broadcast"
)

type StreamHandler struct {
	broadcaster broadcast.Broadcaster
}

func NewStreamHandler(broadcaster broadcast.Broadcaster) *StreamHandler {
	return &StreamHandler{broadcaster: broadcaster}
}

// Stream отдаёт живые события по записям как server-sent events.
// Доставка best-effort: клиент, подключившийся позже, прошлых событий
// не увидит.
func (h *StreamHandler) Stream(c *gin.Context) {
	sub, err := h.broadcaster.Subscribe(c.Request.Context())
	if err != nil {
		logrus.Errorf("failed to subscribe to updates: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Success: false, Error: "updates stream is unavailable"})
		return
	}
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
