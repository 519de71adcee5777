package rest

import (
	"net/http"
	"strconv"

	"github.com/John-Hatton/Inventory/history"
	"github.com/gin-gonic/gin"
)

// HistoryHandler exposes the recent mutation log.
type HistoryHandler struct {
	history *history.Service
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(hist *history.Service) *HistoryHandler {
	return &HistoryHandler{history: hist}
}

// Recent handles GET /api/history[?limit=N].
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.history.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": logs})
}
