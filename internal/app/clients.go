package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
)

// newRedisClient connects the report cache. An empty addr or an unreachable
// server disables caching rather than failing startup.
func newRedisClient(cfg Config, log *logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, report caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, report caching disabled", "addr", cfg.RedisAddr, "error", err)
		return nil
	}
	return client
}
