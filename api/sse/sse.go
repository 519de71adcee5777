package sse

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/viewmodel"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler streams item list snapshots over server-sent events. Every
// committed mutation re-renders the full list to every connected
// client, the same full-replace delivery the in-process live queries
// give their subscribers.
type Handler struct {
	vm     *viewmodel.ItemViewModel
	logger *zap.Logger
}

// NewHandler creates a new SSE Handler.
func NewHandler(vm *viewmodel.ItemViewModel, logger *zap.Logger) *Handler {
	return &Handler{vm: vm, logger: logger}
}

// ServeSSE handles GET /events[?category=...].
func (h *Handler) ServeSSE(c *gin.Context) {
	var (
		snaps  <-chan []model.Item
		cancel func()
		err    error
	)
	if cat := c.Query("category"); cat != "" {
		snaps, cancel, err = h.vm.WatchByCategory(cat)
	} else {
		snaps, cancel, err = h.vm.WatchAll()
	}
	if err != nil {
		h.logger.Error("sse subscribe failed", zap.Error(err))
		c.Status(500)
		return
	}
	defer cancel()

	// Set SSE headers.
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			payload, err := json.Marshal(snap)
			if err != nil {
				h.logger.Error("sse encode failed", zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "event: items\ndata: %s\n\n", payload)
			c.Writer.Flush()

		case <-ticker.C:
			// Keepalive comment to prevent proxy timeouts.
			fmt.Fprintf(c.Writer, ": keepalive\n\n")
			c.Writer.Flush()

		case <-c.Request.Context().Done():
			return
		}
	}
}
