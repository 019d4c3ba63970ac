package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter counts requests per client, method and route in Redis. Without
// a Redis connection requests pass through unlimited.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.RedisClient
		if rdb == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		// Key is per-IP, per-method, per-endpoint
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		resetKey := key + ":resetAt"

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			config.Log.Error("❌ Rate limiter unavailable", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Redis error"))
			c.Abort()
			return
		}

		// First request → set expiry and stable resetAt
		if count == 1 {
			resetAt := time.Now().Add(window)
			pipe := rdb.TxPipeline()
			pipe.Expire(ctx, key, window)
			pipe.Set(ctx, resetKey, resetAt.Unix(), window)
			if _, err := pipe.Exec(ctx); err != nil {
				config.Log.Warn("⚠️  Rate limiter window not armed", zap.String("key", key), zap.Error(err))
			}
		}

		resetAtUnix, _ := rdb.Get(ctx, resetKey).Int64()
		resetAt := time.Unix(resetAtUnix, 0)

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetInSeconds := int(time.Until(resetAt).Seconds())
		if resetInSeconds < 0 {
			resetInSeconds = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}

		// Store in context for controllers
		c.Set("rateLimiter", rate)

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(resetInSeconds))
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
