package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Counter is the window counter behind the rate limits, cache.Limiter in production.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

const rateWindow = time.Minute

// APIRateLimit caps requests per client IP and minute.
func APIRateLimit(counter Counter, max int) gin.HandlerFunc {
	return rateLimit(counter, "api_requests:", max, "too many requests, retry in 1 minute")
}

// CartRateLimit caps cart additions per client IP and minute.
func CartRateLimit(counter Counter, max int) gin.HandlerFunc {
	return rateLimit(counter, "cart_add:", max, "too many cart additions, slow down")
}

// rateLimit is a no-op when counter is nil or max is not positive. A failing
// counter lets the request through.
func rateLimit(counter Counter, prefix string, max int, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || max <= 0 {
			c.Next()
			return
		}

		n, err := counter.Hit(c.Request.Context(), prefix+c.ClientIP(), rateWindow)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		remaining := int64(max) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if n > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       message,
				"retry_after": int(rateWindow.Seconds()),
			})
			return
		}
		c.Next()
	}
}
