package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"fridge-chef/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// Cache AI 回應快取。未命中時 Get 返回 common.ErrCacheMiss。
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key 由命名空間與各部分內容產生固定長度的快取鍵
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s", namespace, hex.EncodeToString(h.Sum(nil)))
}

// New 依設定建立快取；未啟用時返回 nil
func New(cfg config.CacheConfig, rdb *redis.Client) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Backend {
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis cache selected without a redis client")
		}
		return NewRedisCache(rdb, cfg.TTL), nil
	default:
		return NewManager(cfg.MaxSize, cfg.TTL, cfg.CleanupInterval), nil
	}
}
