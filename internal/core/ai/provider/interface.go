package provider

import (
	"context"
	"time"

	"fridge-chef/internal/pkg/common"
)

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Messages    []common.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
	// Model 指定單一模型；空字串時依序嘗試設定的候選模型
	Model string `json:"model,omitempty"`
}

// Usage token 用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response 表示從 AI 提供者收到的響應
type Response struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 生成 AI 響應
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel 獲取首選模型名稱
	GetModel() string

	// GetTimeout 獲取請求超時時間
	GetTimeout() time.Duration

	// Close 關閉提供者連接
	Close() error
}

// Config 定義 AI 提供者配置
type Config struct {
	APIKey     string
	BaseURL    string
	Models     []string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
	Referer    string
	Title      string
}

// UserPrompt 建立單一使用者訊息：文字加上零或多張圖片
func UserPrompt(prompt string, images ...string) []common.Message {
	content := []common.Content{common.TextContent(prompt)}
	for _, img := range images {
		content = append(content, common.ImageContent(img))
	}
	return []common.Message{{Role: "user", Content: content}}
}
