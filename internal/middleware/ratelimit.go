package middleware

import (
	"net/http"
	"strconv"
	"time"

	"anoa.com/schoolrecords/pkg/apperror"
	"anoa.com/schoolrecords/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimit caps mutating requests per client IP to one per window. A nil
// client disables the limiter (no redis configured).
func RateLimit(client *redis.Client, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := c.ClientIP()

		allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, client, key, "global", window)
		if err != nil {
			// Limiter trouble must not take the API down.
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("rate limiter unavailable, letting request through")
			c.Next()
			return
		}

		if !allowed {
			ttl, _ := ratelimiter.GetRateLimitTTL(ctx, client, key, "global")
			if ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
			}
			c.JSON(http.StatusTooManyRequests, gin.H{"error": apperror.ErrRateLimitExceeded.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}
