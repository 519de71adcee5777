package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/remote"
	"github.com/John-Hatton/Inventory/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler bridges the login and register screens to the remote
// client, persisting the returned session locally.
type AuthHandler struct {
	client  *remote.Client
	session *session.Store
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *remote.Client, ses *session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{client: client, session: ses, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse is the body the companion server returns on login and
// registration.
type authResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done := make(chan struct{})
	h.client.Login(req.Username, req.Password,
		func(body []byte) {
			defer close(done)
			h.finishAuth(c, req.Username, "", body)
		},
		func(err error) {
			defer close(done)
			h.failAuth(c, err)
		})
	<-done
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done := make(chan struct{})
	h.client.Register(req.Username, req.Email, req.Password,
		func(body []byte) {
			defer close(done)
			h.finishAuth(c, req.Username, req.Email, body)
		},
		func(err error) {
			defer close(done)
			h.failAuth(c, err)
		})
	<-done
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(c *gin.Context) {
	ctx := c.Request.Context()
	resp := gin.H{"logged_in": h.session.IsLoggedIn(ctx)}
	if role := h.session.Role(ctx); role != "" {
		resp["role"] = role
	}
	if user, err := h.session.User(ctx); err == nil {
		resp["user"] = user
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) finishAuth(c *gin.Context, username, email string, body []byte) {
	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil || ar.Token == "" {
		// Nominally successful response we cannot read.
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid response from server"})
		return
	}
	user := &model.User{Username: username, Email: email, Role: ar.Role}
	if err := h.session.Save(c.Request.Context(), ar.Token, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": ar.Role, "logged_in": true})
}

func (h *AuthHandler) failAuth(c *gin.Context, err error) {
	if errors.Is(err, remote.ErrNoServerURL) {
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "server URL not configured"})
		return
	}
	h.logger.Warn("auth call failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
