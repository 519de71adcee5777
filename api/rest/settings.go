package rest

import (
	"net/http"
	"strings"

	"github.com/John-Hatton/Inventory/settings"
	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the server-configuration screen.
type SettingsHandler struct {
	settings *settings.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(st *settings.Store) *SettingsHandler {
	return &SettingsHandler{settings: st}
}

// GetServerURL handles GET /api/settings/server-url.
func (h *SettingsHandler) GetServerURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"server_url": h.settings.ServerURL(c.Request.Context())})
}

type serverURLRequest struct {
	ServerURL string `json:"server_url" binding:"required"`
}

// SetServerURL handles PUT /api/settings/server-url.
func (h *SettingsHandler) SetServerURL(c *gin.Context) {
	var req serverURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.ServerURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "server_url is required"})
		return
	}
	if err := h.settings.SetServerURL(c.Request.Context(), req.ServerURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"server_url": h.settings.ServerURL(c.Request.Context())})
}
