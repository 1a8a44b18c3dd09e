// Package app 依設定組裝儲存、快取、AI 與推薦服務，供 API 伺服器與 CLI 共用
package app

import (
	"context"
	"errors"
	"fmt"

	"fridge-chef/internal/core/ai/cache"
	"fridge-chef/internal/core/ai/openrouter"
	"fridge-chef/internal/core/ai/provider"
	"fridge-chef/internal/core/ai/queue"
	aiservice "fridge-chef/internal/core/ai/service"
	"fridge-chef/internal/core/image"
	"fridge-chef/internal/core/matching"
	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/core/session"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/infrastructure/redisdb"
	"fridge-chef/internal/infrastructure/storage"
	"fridge-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// App 組裝完成的服務
type App struct {
	Config    *config.Config
	Storage   storage.Backend
	Redis     *redis.Client
	AI        *aiservice.Service
	Pantry    *pantry.Service
	Recipes   *recipe.BookService
	Intake    *recipe.IntakeService
	Recommend *recommend.Service

	closers []func() error
}

// New 依設定建立所有服務；失敗時已建立的資源會被關閉
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Storage, err = storage.New(cfg.Storage, cfg.App.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.closers = append(a.closers, a.Storage.Close)

	if cfg.NeedsRedis() {
		a.Redis, err = redisdb.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, a.Redis.Close)
	}

	a.AI, err = newAIService(cfg, a.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.AI.Close)

	a.Pantry = pantry.NewService(a.Storage)
	a.Recipes = recipe.NewBookService(a.Storage)

	// 未設定 AI 時維持 nil，避免介面中出現帶型別的 nil
	var gen recommend.TextGenerator
	if a.AI.Enabled() {
		gen = a.AI
		a.Intake = recipe.NewIntakeService(a.AI, cfg.Image.MaxImages)
	}
	narrator := recommend.NewNarrator(gen, cfg.AI.NarrationTimeout, cfg.Narration.FallbackReason)

	sessions, err := session.New(cfg.Session, a.Redis)
	if err != nil {
		return nil, err
	}
	policy := matching.NewPolicy(cfg.Matching.ExtraIgnorable, cfg.Matching.ExtraMeat)
	a.Recommend = recommend.NewService(sessions, a.Pantry, a.Recipes, policy, narrator)

	common.LogInfo("服務初始化完成",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("session", cfg.Session.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("ai_enabled", a.AI.Enabled()),
	)
	return a, nil
}

func newAIService(cfg *config.Config, rdb *redis.Client) (*aiservice.Service, error) {
	if !cfg.AI.Enabled {
		return aiservice.NewService(nil, nil, nil, cfg.AI.MaxTokens), nil
	}

	c, err := cache.New(cfg.Cache, rdb)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	var p provider.Provider = queue.New(openrouter.NewClient(provider.Config{
		APIKey:    cfg.AI.APIKey,
		BaseURL:   cfg.AI.BaseURL,
		Models:    cfg.AI.Models(),
		MaxTokens: cfg.AI.MaxTokens,
		Timeout:   cfg.AI.Timeout,
	}), cfg.AI.Workers, cfg.AI.QueueSize)
	images := image.NewService(cfg.Image.MaxSizeBytes, cfg.Image.MaxDimension)

	common.LogInfo("AI 服務已啟用",
		zap.Strings("models", cfg.AI.Models()),
		zap.Int("workers", cfg.AI.Workers),
		zap.String("api_key", config.MaskAPIKey(cfg.AI.APIKey)),
	)
	return aiservice.NewService(p, c, images, cfg.AI.MaxTokens), nil
}

// Close 依建立的相反順序關閉資源
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
