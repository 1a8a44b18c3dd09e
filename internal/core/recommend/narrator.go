package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// FallbackReason AI 無法使用時的推薦理由（「以目前的食材組合最適合的料理」）
const FallbackReason = "현재 재료 조합으로 가장 잘 맞는 요리입니다"

// DefaultNarrationTimeout 未設定時的 AI 呼叫上限
const DefaultNarrationTimeout = 8 * time.Second

// TextGenerator 文字 AI 呼叫
type TextGenerator interface {
	Generate(ctx context.Context, purpose, prompt string, images ...string) (string, error)
}

// Narration 推薦理由。Name 與 Missing 一律使用呼叫端提供的值。
type Narration struct {
	Name    string `json:"name"`
	Reason  string `json:"reason"`
	Missing string `json:"missing"`
}

// Narrator 請 AI 用一句話說明推薦理由；任何失敗都退回固定句子
type Narrator struct {
	ai       TextGenerator
	timeout  time.Duration
	fallback string
}

// NewNarrator 創建推薦理由產生器；ai 為 nil 時永遠使用 fallback
func NewNarrator(ai TextGenerator, timeout time.Duration, fallback string) *Narrator {
	if timeout <= 0 {
		timeout = DefaultNarrationTimeout
	}
	if strings.TrimSpace(fallback) == "" {
		fallback = FallbackReason
	}
	return &Narrator{ai: ai, timeout: timeout, fallback: fallback}
}

const narrationPrompt = `당신은 자취생을 위한 요리 도우미입니다.
추천 요리: %s
부족한 재료: %s
이 요리를 지금 추천하는 이유를 친근한 한 문장으로 작성하세요.
요리 이름과 부족한 재료 목록은 바꾸지 말고 이유만 작성하세요.
다른 설명 없이 JSON으로만 답하세요: {"reason": "이유"}`

// Narrate 產生推薦理由，不返回錯誤
func (n *Narrator) Narrate(ctx context.Context, recipeName, missingText string) Narration {
	if n == nil {
		return Narration{Name: recipeName, Reason: FallbackReason, Missing: missingText}
	}
	out := Narration{Name: recipeName, Reason: n.fallback, Missing: missingText}
	if n.ai == nil {
		return out
	}

	reason, err := n.reason(ctx, recipeName, missingText)
	if err != nil {
		common.LogWarn("推薦理由產生失敗，使用預設句子",
			zap.String("recipe", recipeName),
			zap.Error(err),
		)
		return out
	}
	out.Reason = reason
	return out
}

func (n *Narrator) reason(ctx context.Context, recipeName, missingText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	type result struct {
		content string
		err     error
	}
	done := make(chan result, 1)
	go func() {
		content, err := n.ai.Generate(ctx, "narration", fmt.Sprintf(narrationPrompt, recipeName, missingText))
		done <- result{content, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return "", fmt.Errorf("narration timed out: %w", ctx.Err())
	}
	if res.err != nil {
		return "", res.err
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := common.ParseLenientJSON(res.content, &payload); err != nil {
		return "", err
	}
	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		return "", errors.New("empty reason in AI response")
	}
	return reason, nil
}
