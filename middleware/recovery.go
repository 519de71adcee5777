package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a logged 500 instead of a dropped
// connection.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("trace_id", GetTraceID(c)))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
