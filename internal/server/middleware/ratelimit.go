package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/asadintwala/jobspy-scraper-api/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP per minute, backed by redis
// counters. A redis failure lets the request through rather than blocking
// traffic on the cache.
func RateLimit(cache *redis.Cache, perMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := cache.IncrementClientRateLimit(ctx, c.ClientIP())
		if err != nil {
			logger.Error("failed to check rate limit",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(perMinute) {
			logger.Warn("rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("count", count),
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": fmt.Sprintf("rate limit exceeded: maximum %d requests per minute", perMinute),
			})
			return
		}

		c.Next()
	}
}
