package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridge-chef/internal/core/ai/cache"
	"fridge-chef/internal/core/ai/provider"
	"fridge-chef/internal/core/ai/queue"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// ImageProcessor 將使用者上傳的圖片轉成模型可接受的 data URI
type ImageProcessor interface {
	ProcessImage(ctx context.Context, imageData string) (string, error)
}

// Response AI 回應
type Response struct {
	Content  string
	Model    string
	CacheHit bool
}

// Service AI 服務：整理 prompt、處理圖片、查快取並呼叫提供者。
// provider 為 nil 時代表未設定金鑰，所有呼叫返回 ErrAIDisabled。
type Service struct {
	provider  provider.Provider
	cache     cache.Cache
	images    ImageProcessor
	maxTokens int
}

// NewService 創建 AI 服務；cache 與 images 可為 nil
func NewService(p provider.Provider, c cache.Cache, images ImageProcessor, maxTokens int) *Service {
	return &Service{
		provider:  p,
		cache:     c,
		images:    images,
		maxTokens: maxTokens,
	}
}

// Enabled 是否已設定 AI 提供者
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// ProcessRequest 統一對外方法：purpose 只用於日誌與快取命名空間
func (s *Service) ProcessRequest(ctx context.Context, purpose, prompt string, images ...string) (*Response, error) {
	if !s.Enabled() {
		return nil, common.ErrAIDisabled
	}

	// 統一 prompt 格式，確保快取 key 一致
	prompt = compactPrompt(prompt)
	if prompt == "" {
		return nil, common.ErrInvalidRequest.WithErr(errors.New("empty prompt"))
	}

	processed := make([]string, 0, len(images))
	if len(images) > 0 {
		if s.images == nil {
			return nil, common.ErrInvalidRequest.WithErr(errors.New("image input is not supported"))
		}
		for i, img := range images {
			p, err := s.images.ProcessImage(ctx, img)
			if err != nil {
				return nil, fmt.Errorf("failed to process image %d: %w", i+1, err)
			}
			processed = append(processed, p)
		}
	}

	key := cache.Key(purpose, append([]string{prompt}, processed...)...)
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, key); err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		} else if err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.String("purpose", purpose), zap.Error(err))
		}
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, &provider.Request{
		Messages:  provider.UserPrompt(prompt, processed...),
		MaxTokens: s.maxTokens,
	})
	model := s.provider.GetModel()
	if resp != nil {
		model = resp.Model
	}
	common.LogAICall(purpose, model, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp.Content); err != nil {
			common.LogWarn("寫入快取失敗", zap.String("purpose", purpose), zap.Error(err))
		}
	}

	return &Response{Content: resp.Content, Model: resp.Model}, nil
}

// Generate 只返回文字內容，供推薦理由與食譜擷取使用
func (s *Service) Generate(ctx context.Context, purpose, prompt string, images ...string) (string, error) {
	resp, err := s.ProcessRequest(ctx, purpose, prompt, images...)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Status AI 服務狀態，供健康檢查輸出
type Status struct {
	Enabled bool          `json:"enabled"`
	Model   string        `json:"model,omitempty"`
	Queue   *queue.Status `json:"queue,omitempty"`
	Cache   *cache.Stats  `json:"cache,omitempty"`
}

// Status 返回模型、佇列與本機快取的狀態
func (s *Service) Status() Status {
	if !s.Enabled() {
		return Status{}
	}
	st := Status{Enabled: true, Model: s.provider.GetModel()}
	if q, ok := s.provider.(*queue.Provider); ok {
		qs := q.Status()
		st.Queue = &qs
	}
	if m, ok := s.cache.(*cache.Manager); ok {
		cs := m.GetStats()
		st.Cache = &cs
	}
	return st
}

// Close 關閉提供者與快取
func (s *Service) Close() error {
	var errs []error
	if s.provider != nil {
		errs = append(errs, s.provider.Close())
	}
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	return errors.Join(errs...)
}

// compactPrompt 去除每行前後空白與空行，連續空白合併為一格
func compactPrompt(prompt string) string {
	lines := strings.Split(prompt, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
