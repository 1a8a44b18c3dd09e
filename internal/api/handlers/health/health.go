package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	aiservice "fridge-chef/internal/core/ai/service"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 就緒檢查的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 將函式轉成 Pinger
type PingFunc func(ctx context.Context) error

// Ping 實現 Pinger
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	AIEnabled bool                   `json:"ai_enabled"`
	AI        *aiservice.Status      `json:"ai,omitempty"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg       *config.Config
	aiEnabled bool
	aiStatus  func() aiservice.Status
	deps      map[string]Pinger
}

// NewHandler 創建健康檢查處理器；deps 以名稱區分（storage、redis ...）
func NewHandler(cfg *config.Config, aiEnabled bool, deps map[string]Pinger) *Handler {
	return &Handler{cfg: cfg, aiEnabled: aiEnabled, deps: deps}
}

// WithAIStatus 在健康檢查中附上 AI 佇列與快取狀態
func (h *Handler) WithAIStatus(fn func() aiservice.Status) *Handler {
	h.aiStatus = fn
	return h
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var ai *aiservice.Status
	if h.aiStatus != nil {
		st := h.aiStatus()
		ai = &st
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		AIEnabled: h.aiEnabled,
		AI:        ai,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查：逐一 ping 依賴
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			common.LogWarn("依賴未就緒", zap.String("dependency", name), zap.Error(err))
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
