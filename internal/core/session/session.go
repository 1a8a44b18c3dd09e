// Package session 保存每個使用者工作階段的推薦狀態
package session

import (
	"fmt"
	"strings"
	"time"

	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL 工作階段閒置多久後失效
const DefaultTTL = 24 * time.Hour

// New 依設定建立工作階段儲存；redis 後端需要已連線的 client
func New(cfg config.SessionConfig, rdb *redis.Client) (recommend.SessionStore, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStore(ttl), nil
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("session backend %q requires a redis connection", cfg.Backend)
		}
		return NewRedisStore(rdb, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.Backend)
	}
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return common.ErrInvalidRequest.WithErr(fmt.Errorf("empty session id"))
	}
	return nil
}
