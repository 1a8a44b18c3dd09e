package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fridge-chef/internal/core/ai/provider"
	"fridge-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultTimeout = 60 * time.Second
)

// Client OpenRouter（OpenAI 相容）chat completions 客戶端
type Client struct {
	client *resty.Client
	cfg    provider.Config
}

var _ provider.Provider = (*Client)(nil)

// chatRequest chat completions 請求體
type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []common.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
}

// chatResponse chat completions 響應
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
}

// apiError 表示 API 錯誤
type apiError struct {
	Error struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg provider.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Referer == "" {
		cfg.Referer = "https://github.com/fridge-chef"
	}
	if cfg.Title == "" {
		cfg.Title = "Fridge Chef"
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", cfg.Referer).
		SetHeader("X-Title", cfg.Title)

	return &Client{client: client, cfg: cfg}
}

// Generate 依序嘗試候選模型，第一個成功的回應即返回。
// req.Model 非空時只使用該模型。
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	models := c.cfg.Models
	if req.Model != "" {
		models = []string{req.Model}
	}
	if len(models) == 0 {
		return nil, common.ErrAIDisabled.WithErr(errors.New("no model configured"))
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}

	var errs []error
	for _, model := range models {
		resp, err := c.generateWith(ctx, model, req, maxTokens)
		if err == nil {
			return resp, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", model, err))

		// 呼叫端取消或逾時就不再嘗試下一個模型
		if ctx.Err() != nil {
			break
		}
		common.LogWarn("模型呼叫失敗，嘗試下一個",
			zap.String("model", model),
			zap.Error(err),
		)
	}

	return nil, common.ErrAIServiceError.WithErr(errors.Join(errs...))
}

func (c *Client) generateWith(ctx context.Context, model string, req *provider.Request, maxTokens int) (*provider.Response, error) {
	body := chatRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	common.LogDebug("OpenRouter response",
		zap.String("model", model),
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("AI service error (status %d): %s", resp.StatusCode(), describeError(resp.Body()))
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w (response: %s)", err, sanitizeResponse(resp.Body()))
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("empty choices in response (response: %s)", sanitizeResponse(resp.Body()))
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, errors.New("empty content in response")
	}

	usedModel := parsed.Model
	if usedModel == "" {
		usedModel = model
	}
	return &provider.Response{Content: content, Model: usedModel, Usage: parsed.Usage}, nil
}

// describeError 取出 API 錯誤訊息，無法解析時返回清理後的響應
func describeError(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return sanitizeResponse(body)
}

// sanitizeResponse 移除響應中的圖片數據並限制長度，避免寫入日誌
func sanitizeResponse(body []byte) string {
	s := string(body)
	if strings.Contains(s, "data:image/") || (len(s) > 100 && strings.Contains(s, "base64")) {
		return "[IMAGE_DATA_REMOVED]"
	}
	const limit = 500
	if len(s) > limit {
		return s[:limit] + "...(truncated)"
	}
	return s
}

// GetModel 獲取首選模型名稱
func (c *Client) GetModel() string {
	if len(c.cfg.Models) == 0 {
		return ""
	}
	return c.cfg.Models[0]
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.cfg.Timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
