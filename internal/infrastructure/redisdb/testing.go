package redisdb

import (
	"context"
	"os"
	"testing"

	"fridge-chef/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// NewTestClient 連到 REDIS_ADDR 指定的 Redis；未設定或無法連線時跳過測試
func NewTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := NewClient(context.Background(), config.RedisConfig{Addr: addr, DB: 15})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return client
}
