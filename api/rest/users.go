package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/remote"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes the remote user administration screens. The
// router gates every route on the stored admin role; the companion
// server enforces the real check per bearer token.
type UserHandler struct {
	client *remote.Client
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(client *remote.Client, logger *zap.Logger) *UserHandler {
	return &UserHandler{client: client, logger: logger}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	h.proxy(c, func(onOK func([]byte), onErr func(error)) {
		h.client.ListUsers(onOK, onErr)
	}, func(body []byte) (interface{}, error) {
		var users []model.User
		if err := json.Unmarshal(body, &users); err != nil {
			return nil, err
		}
		return gin.H{"users": users}, nil
	})
}

type roleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole handles PUT /api/users/:id/role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req roleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	h.proxy(c, func(onOK func([]byte), onErr func(error)) {
		h.client.UpdateUserRole(id, req.Role, onOK, onErr)
	}, passthrough)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.proxy(c, func(onOK func([]byte), onErr func(error)) {
		h.client.DeleteUser(id, onOK, onErr)
	}, passthrough)
}

// proxy bridges one async remote call into this handler's response,
// normalizing failures the way every remote screen does.
func (h *UserHandler) proxy(c *gin.Context, invoke func(func([]byte), func(error)), parse func([]byte) (interface{}, error)) {
	done := make(chan struct{})
	invoke(
		func(body []byte) {
			defer close(done)
			resp, err := parse(body)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": "invalid response from server"})
				return
			}
			c.JSON(http.StatusOK, resp)
		},
		func(err error) {
			defer close(done)
			switch {
			case errors.Is(err, remote.ErrNoServerURL):
				c.JSON(http.StatusPreconditionFailed, gin.H{"error": "server URL not configured"})
			case errors.Is(err, remote.ErrNotLoggedIn):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			default:
				h.logger.Warn("remote user call failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			}
		})
	<-done
}

func passthrough(body []byte) (interface{}, error) {
	var v interface{}
	if len(body) == 0 {
		return gin.H{"status": "ok"}, nil
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}
