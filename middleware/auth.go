package middleware

import (
	"net/http"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/session"
	"github.com/gin-gonic/gin"
)

// RequireLogin aborts with 401 unless a session token is stored.
func RequireLogin(ses *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ses.IsLoggedIn(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the stored session role is admin.
// The gate is cosmetic on purpose: the remote server re-checks the
// bearer token on every admin call.
func RequireAdmin(ses *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ses.IsLoggedIn(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}
		if ses.Role(c.Request.Context()) != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
