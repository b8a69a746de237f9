package quota

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Counter is an expiring integer store.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCounter) Get(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// MemoryCounter keeps counters in process memory. Counts are lost on restart
// and not shared between instances.
type MemoryCounter struct {
	cache *cache.Cache
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{cache: cache.New(24*time.Hour, 10*time.Minute)}
}

func (c *MemoryCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	// Add fails when the key exists, which is the case we want to keep.
	_ = c.cache.Add(key, int64(0), ttl)
	return c.cache.IncrementInt64(key, 1)
}

func (c *MemoryCounter) Get(ctx context.Context, key string) (int64, error) {
	if v, ok := c.cache.Get(key); ok {
		return v.(int64), nil
	}
	return 0, nil
}
