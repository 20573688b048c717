package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"asso-portal/pkg/redis"
	"asso-portal/pkg/response"
)

// RateLimit throttles by client IP and route using Redis. A nil client or
// a Redis failure degrades open: the portal stays usable without Redis.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
