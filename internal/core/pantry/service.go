package pantry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// AddRequest 新增或覆寫食材
type AddRequest struct {
	Name    string     `json:"name"`
	Expiry  *time.Time `json:"expiry,omitempty"`
	Storage string     `json:"storage,omitempty"`
	// Seasoning 醬料或調味料，忽略保存期限
	Seasoning bool `json:"seasoning,omitempty"`
}

// Service 冰箱服務；寫入以互斥鎖序列化（讀取、修改、整批覆寫）
type Service struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
}

// NewService 創建冰箱服務
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock 替換時間來源，用於測試
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Items 讀取全部食材
func (s *Service) Items(ctx context.Context) ([]Item, error) {
	if s.store == nil {
		return nil, common.ErrDataUnavailable.WithErr(errNoStore)
	}
	items, err := s.store.LoadPantry(ctx)
	if err != nil {
		return nil, common.ErrDataUnavailable.WithErr(err)
	}
	return items, nil
}

// Names 返回食材原始名稱，保持儲存順序
func (s *Service) Names(ctx context.Context) ([]string, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names, nil
}

// List 返回附帶保存期限狀態的列表
func (s *Service) List(ctx context.Context) ([]View, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	views := make([]View, 0, len(items))
	for _, it := range items {
		views = append(views, NewView(it, today))
	}
	return views, nil
}

// Add 新增食材；同名（忽略大小寫與空白）時覆寫保存期限與位置
func (s *Service) Add(ctx context.Context, req AddRequest) (Item, error) {
	storage, err := ParseStorage(req.Storage)
	if err != nil {
		return Item{}, err
	}
	item := Item{
		Name:    strings.Join(strings.Fields(req.Name), " "),
		Expiry:  DateOnly(req.Expiry),
		Storage: storage,
	}
	if req.Seasoning {
		item.Expiry = nil
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx)
	if err != nil {
		return Item{}, err
	}

	key := Key(item.Name)
	for i, existing := range items {
		if Key(existing.Name) != key {
			continue
		}
		items[i] = item
		if err := s.store.SavePantry(ctx, dedupe(items)); err != nil {
			return Item{}, err
		}
		common.LogInfo("食材已更新", zap.String("name", item.Name))
		return item, nil
	}

	if err := s.store.AppendPantry(ctx, item); err != nil {
		return Item{}, err
	}
	common.LogInfo("食材已新增", zap.String("name", item.Name))
	return item, nil
}

// Remove 刪除食材
func (s *Service) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx)
	if err != nil {
		return err
	}

	key := Key(name)
	kept := items[:0]
	for _, it := range items {
		if Key(it.Name) != key {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return common.ErrNotFound.WithErr(fmt.Errorf("ingredient %q", name))
	}

	if err := s.store.SavePantry(ctx, kept); err != nil {
		return err
	}
	common.LogInfo("食材已刪除", zap.String("name", name))
	return nil
}

// dedupe 確保每個名稱只有一筆，保留第一次出現的位置與最後一次的內容
func dedupe(items []Item) []Item {
	index := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		k := Key(it.Name)
		if i, ok := index[k]; ok {
			out[i] = it
			continue
		}
		index[k] = len(out)
		out = append(out, it)
	}
	return out
}
