package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 10 * time.Minute

type ipLimiter struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket. Buckets idle past
// limiterIdleTimeout are dropped by a sweeper goroutine.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	var buckets sync.Map

	go func() {
		for range time.Tick(limiterIdleTimeout / 2) {
			cutoff := time.Now().Add(-limiterIdleTimeout)
			buckets.Range(func(k, v interface{}) bool {
				if v.(*ipLimiter).lastSeen.Before(cutoff) {
					buckets.Delete(k)
				}
				return true
			})
		}
	}()

	return func(c *gin.Context) {
		v, _ := buckets.LoadOrStore(c.ClientIP(), &ipLimiter{bucket: rate.NewLimiter(rps, burst)})
		lim := v.(*ipLimiter)
		lim.lastSeen = time.Now()
		if !lim.bucket.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
