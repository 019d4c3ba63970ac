package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects to REDIS_URL. Without it the storefront runs with the
// in-memory cache and without rate limiting.
func ConnectRedis() error {
	redisURL := getEnv("REDIS_URL", "")
	if redisURL == "" {
		Log.Warn("⚠️  REDIS_URL not set, using in-memory catalog cache")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)
	res, err := client.Ping(Ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	RedisClient = client
	Log.Info("✅ Connected to Redis", zap.String("ping", res))
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
		Log.Info("✅ Redis connection closed")
	}
}
