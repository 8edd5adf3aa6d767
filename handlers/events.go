package handlers

import (
	"io"
	"time"

	"github.com/debasish790/backend-bill/events"
	"github.com/gin-gonic/gin"
)

type Subscriber interface {
	Subscribe(vendorID uint) (<-chan events.Event, func())
}

type EventHandler struct {
	bus       Subscriber
	heartbeat time.Duration
}

func NewEventHandler(bus Subscriber) *EventHandler {
	return &EventHandler{bus: bus, heartbeat: 25 * time.Second}
}

// Stream sends the vendor's change events as server-sent events until the client
// goes away or the bus shuts down.
func (h *EventHandler) Stream(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		return
	}

	ch, cancel := h.bus.Subscribe(vendor)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"vendor_id": vendor})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type()), ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().Unix()})
			return true
		}
	})
}
