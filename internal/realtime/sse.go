package realtime

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves the monitoring room over server-sent events.
// Connecting is the explicit opt-in; the subscription lasts until the
// client disconnects or the hub closes.
func StreamHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ch := hub.Subscribe()
		defer hub.Unsubscribe(id)

		slog.Info("client joined monitoring room", "subscriber_id", id)
		defer slog.Info("client left monitoring room", "subscriber_id", id)

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		clientGone := c.Request.Context().Done()
		c.Stream(func(w io.Writer) bool {
			select {
			case <-clientGone:
				return false
			case ev, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent(ev.Name, ev.Payload)
				return true
			}
		})
	}
}
