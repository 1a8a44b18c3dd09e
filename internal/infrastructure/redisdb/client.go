// Package redisdb 建立共用的 Redis 連線，供 AI 快取與推薦狀態使用
package redisdb

import (
	"context"
	"fmt"
	"time"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewClient 建立連線並以 PING 確認可用
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	common.LogInfo("Redis 已連線", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}
