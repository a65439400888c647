package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/redis"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// RateLimit limits requests per client IP and route within a window.
// With a nil rdb the middleware degrades to a pass-through, consistent
// with JWTAuth's blacklist behavior.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// pass through on Redis errors
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "muitas requisições, tente novamente em instantes")
			c.Abort()
			return
		}

		c.Next()
	}
}
