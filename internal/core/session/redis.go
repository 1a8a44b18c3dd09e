package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fridge-chef/internal/core/recommend"

	"github.com/go-redis/redis/v8"
)

// RedisStore 以 Redis 保存工作階段，多個 API 實例與 CLI 可共用
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ recommend.SessionStore = (*RedisStore)(nil)

// NewRedisStore 創建 Redis 工作階段儲存
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, prefix: "fridge-chef:session:"}
}

// Load 讀取狀態；不存在時返回空狀態
func (s *RedisStore) Load(ctx context.Context, id string) (recommend.State, error) {
	if err := validateID(id); err != nil {
		return recommend.State{}, err
	}
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return recommend.State{}, nil
		}
		return recommend.State{}, fmt.Errorf("failed to load session: %w", err)
	}

	var state recommend.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return recommend.State{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return state, nil
}

// Save 保存狀態並延長有效期
func (s *RedisStore) Save(ctx context.Context, id string, state recommend.State) error {
	if err := validateID(id); err != nil {
		return err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Reset 清除已推薦紀錄
func (s *RedisStore) Reset(ctx context.Context, id string) error {
	state, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	return s.Save(ctx, id, state.Reset())
}
