package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	traceIDKey    = "trace_id"
	TraceIDHeader = "X-Trace-ID"
)

// TraceID tags every request with an identifier that flows into the
// request log and the change history. An inbound X-Trace-ID is honored
// so a caller can correlate its own retries.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(traceIDKey, id)
		c.Header(TraceIDHeader, id)
		c.Next()
	}
}

// GetTraceID returns the request's trace ID, or "" outside a request.
func GetTraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}
