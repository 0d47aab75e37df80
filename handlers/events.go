package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderEvents streams complete order snapshots over SSE. Every event
// carries the full list; clients replace their view, never merge.
func (h *Handler) OrderEvents(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	snapshots, cancel := h.Hub.Subscribe()
	defer cancel()

	// Seed the stream with the current mirror so the client does not wait
	// for the next mutation.
	c.SSEvent("orders", h.State.Orders())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case orders, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("orders", orders)
			return true
		}
	})
}

// GetStatus reports which store is pinned and the controller's
// loading/error pair
func (h *Handler) GetStatus(c *gin.Context) {
	loading, errMsg := h.State.Status()
	c.JSON(http.StatusOK, gin.H{
		"store":   h.StoreName,
		"loading": loading,
		"error":   errMsg,
	})
}

// ClearError dismisses the visible error banner
func (h *Handler) ClearError(c *gin.Context) {
	h.State.ClearError()
	c.JSON(http.StatusOK, gin.H{"message": "error cleared"})
}
