package api

import (
	"errors"
	"time"

	"fridge-chef/internal/api/handlers/health"
	pantryHandler "fridge-chef/internal/api/handlers/pantry"
	recipeHandler "fridge-chef/internal/api/handlers/recipe"
	recommendHandler "fridge-chef/internal/api/handlers/recommend"
	"fridge-chef/internal/api/middleware"
	aiservice "fridge-chef/internal/core/ai/service"
	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 未設定時的請求超時
	defaultTimeout = 30 * time.Second
	// 未設定時的請求體大小限制 (10MB)
	defaultMaxBodySize = 10 << 20
)

// Services 路由需要的服務；Intake 可為 nil（未設定 AI）
type Services struct {
	Pantry    *pantry.Service
	Recipes   *recipe.BookService
	Intake    *recipe.IntakeService
	Recommend *recommend.Service
	AIEnabled bool
	// AIStatus 可為 nil；提供時 /health 會附上佇列與快取狀態
	AIStatus func() aiservice.Status
	// Checks 就緒檢查的依賴
	Checks map[string]health.Pinger
}

// SetupRouter 設置路由；返回的 cleanup 需在伺服器關閉後呼叫
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("config is required")
	}
	if svc.Pantry == nil || svc.Recipes == nil || svc.Recommend == nil {
		return nil, nil, errors.New("pantry, recipe and recommend services are required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBodySize := cfg.Server.MaxBodyBytes
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", middleware.SessionHeader},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", middleware.SessionHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Timeout(timeout))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svc.AIEnabled, svc.Checks).WithAIStatus(svc.AIStatus)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	// API 路由組
	api := router.Group("/api/v1")
	{
		pantryHandler.NewHandler(svc.Pantry).Register(api.Group("/pantry"))
		recipeHandler.NewHandler(svc.Recipes, svc.Intake).Register(api.Group("/recipes"), dedup.Handler())
		recommendHandler.NewHandler(svc.Recommend).Register(api.Group("/recommendations"))
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("ai_enabled", svc.AIEnabled),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, dedup.Close, nil
}
