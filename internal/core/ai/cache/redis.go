package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fridge-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisCache 以 Redis 保存 AI 回應，多個 API 實例可共用
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache 創建 Redis 快取
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "fridge-chef:ai:"}
}

// Get 獲取緩存
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss("redis")
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	common.LogCacheHit("redis")
	return val, nil
}

// Set 設置緩存
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close Redis 連線由建立者關閉
func (c *RedisCache) Close() error {
	return nil
}
