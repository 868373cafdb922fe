package cache

import (
	"context"
	"errors"
	"time"

	"mimo_finance/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores snapshots and memoized results shared by every API
// instance. Keys are namespaced by prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

var _ interfaces.ICache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Invalidate drops key along with every memoized result, which is keyed
// "result:*" under the same prefix.
func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return err
	}
	iter := c.client.Scan(ctx, 0, c.key("result:*"), 100).Iterator()
	var stale []string
	for iter.Next(ctx) {
		stale = append(stale, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	return c.client.Del(ctx, stale...).Err()
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}
