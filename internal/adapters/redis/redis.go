package redis

import (
	"context"
	"time"

	"corkboard-listing-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient creates the Redis client backing the mutation-event notifier.
// Timeouts stay short: event delivery happens inside the request path and
// must never stall a mutation.
func NewClient(cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
	})

	return rdb
}

// PingRedis tests the Redis connection
func PingRedis(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.Ping(ctx).Err()
}
