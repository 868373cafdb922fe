package database

import (
	"context"
	"time"

	"mimo_finance/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client and performs a health check. Callers
// run without the shared cache when it fails.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
