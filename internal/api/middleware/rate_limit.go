package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/ratelimit"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// RateLimit enforces limit hits per window, keyed by client IP and
// route path. A nil limiter disables the check so the server can run
// without one in tests.
func RateLimit(limiter *ratelimit.Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP() + ":" + c.FullPath()
		if !limiter.Allow(key, limit, window) {
			response.TooManyRequests(c, 42901, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
