package recommend

import (
	"context"
	"fmt"
	"sync"

	"fridge-chef/internal/core/matching"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// SessionStore 保存每個工作階段的推薦狀態
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State) error
	Reset(ctx context.Context, sessionID string) error
}

// PantrySource 冰箱食材名稱來源
type PantrySource interface {
	Names(ctx context.Context) ([]string, error)
}

// RecipeSource 食譜本來源
type RecipeSource interface {
	List(ctx context.Context) ([]recipe.Entry, error)
	Get(ctx context.Context, name string) (recipe.Entry, error)
}

// Result 一次推薦的回應；Narration 只有要求說明時才有值
type Result struct {
	Recommendation
	Narration *Narration `json:"narration,omitempty"`
}

// CookResult 製作料理時會用到的冰箱食材
type CookResult struct {
	Recipe recipe.Entry `json:"recipe"`
	Used   []string     `json:"used"`
}

// Service 推薦控制器：讀取資料、呼叫純函式挑選、保存工作階段狀態
type Service struct {
	sessions SessionStore
	pantry   PantrySource
	recipes  RecipeSource
	policy   *matching.Policy
	narrator *Narrator

	mu sync.Mutex
}

// NewService 創建推薦服務；policy 為 nil 時使用預設規則
func NewService(sessions SessionStore, pantry PantrySource, recipes RecipeSource, policy *matching.Policy, narrator *Narrator) *Service {
	if policy == nil {
		policy = matching.DefaultPolicy()
	}
	if narrator == nil {
		narrator = NewNarrator(nil, 0, "")
	}
	return &Service{
		sessions: sessions,
		pantry:   pantry,
		recipes:  recipes,
		policy:   policy,
		narrator: narrator,
	}
}

// Next 推薦下一道料理並記錄到工作階段；產生推薦理由時不持有鎖
func (s *Service) Next(ctx context.Context, sessionID string, narrate bool) (*Result, error) {
	rec, err := s.advance(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	res := &Result{Recommendation: rec}
	if narrate {
		n := s.narrator.Narrate(ctx, rec.Recipe.Name, rec.MissingText)
		res.Narration = &n
	}
	return res, nil
}

// advance 在鎖內完成讀取、挑選與保存工作階段
func (s *Service) advance(ctx context.Context, sessionID string) (Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return Recommendation{}, err
	}
	names, err := s.pantry.Names(ctx)
	if err != nil {
		return Recommendation{}, err
	}

	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return Recommendation{}, fmt.Errorf("failed to load session: %w", err)
	}

	rec, next, err := Recommend(s.policy, state, names, recipes)
	if err != nil {
		return Recommendation{}, err
	}
	if err := s.sessions.Save(ctx, sessionID, next); err != nil {
		return Recommendation{}, fmt.Errorf("failed to save session: %w", err)
	}

	if rec.Reset {
		common.LogInfo("所有食譜都推薦過，重新開始", zap.String("session", sessionID))
	}
	return rec, nil
}

// Reset 清除工作階段的推薦紀錄
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Reset(ctx, sessionID)
}

// Last 返回工作階段最後一次推薦，沒有時返回 nil
func (s *Service) Last(ctx context.Context, sessionID string) (*Recommendation, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.Last, nil
}

// Cook 列出製作指定料理會用到的冰箱食材；實際刪除由使用者另外確認
func (s *Service) Cook(ctx context.Context, recipeName string) (*CookResult, error) {
	entry, err := s.recipes.Get(ctx, recipeName)
	if err != nil {
		return nil, err
	}
	names, err := s.pantry.Names(ctx)
	if err != nil {
		return nil, err
	}
	used := s.policy.UsedPantryItems(entry.Ingredients, names)
	if used == nil {
		used = []string{}
	}
	return &CookResult{Recipe: entry, Used: used}, nil
}
