package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// BookService 食譜本服務；寫入以互斥鎖序列化
type BookService struct {
	store Store
	mu    sync.Mutex
}

// NewBookService 創建食譜本服務
func NewBookService(store Store) *BookService {
	return &BookService{store: store}
}

// List 讀取全部食譜，保持儲存順序
func (s *BookService) List(ctx context.Context) ([]Entry, error) {
	if s.store == nil {
		return nil, common.ErrDataUnavailable.WithErr(errors.New("recipe store is not configured"))
	}
	entries, err := s.store.LoadRecipes(ctx)
	if err != nil {
		return nil, common.ErrDataUnavailable.WithErr(err)
	}
	return entries, nil
}

// Get 依名稱取得第一筆食譜
func (s *BookService) Get(ctx context.Context, name string) (Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	name = strings.TrimSpace(name)
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, common.ErrNotFound.WithErr(fmt.Errorf("recipe %q", name))
}

// Add 新增食譜；(名稱, 連結) 相同時覆寫原項目
func (s *BookService) Add(ctx context.Context, entry Entry) (Entry, error) {
	entry = entry.Trimmed()
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}

	id := entry.identity()
	for i, e := range entries {
		if e.identity() != id {
			continue
		}
		entries[i] = entry
		if err := s.store.SaveRecipes(ctx, entries); err != nil {
			return Entry{}, err
		}
		common.LogInfo("食譜已更新", zap.String("name", entry.Name))
		return entry, nil
	}

	if err := s.store.AppendRecipe(ctx, entry); err != nil {
		return Entry{}, err
	}
	common.LogInfo("食譜已新增", zap.String("name", entry.Name))
	return entry, nil
}

// ReplaceAll 以編輯後的整批內容覆寫食譜本，丟棄沒有名稱的列並依 (名稱, 連結) 去重
func (s *BookService) ReplaceAll(ctx context.Context, entries []Entry) ([]Entry, error) {
	cleaned := Clean(entries)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, common.ErrStoreWrite.WithErr(errors.New("recipe store is not configured"))
	}
	if err := s.store.SaveRecipes(ctx, cleaned); err != nil {
		return nil, err
	}
	common.LogInfo("食譜本已覆寫",
		zap.Int("received", len(entries)),
		zap.Int("saved", len(cleaned)),
	)
	return cleaned, nil
}

// Delete 刪除所有同名食譜
func (s *BookService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.List(ctx)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	kept := entries[:0]
	for _, e := range entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return common.ErrNotFound.WithErr(fmt.Errorf("recipe %q", name))
	}

	if err := s.store.SaveRecipes(ctx, kept); err != nil {
		return err
	}
	common.LogInfo("食譜已刪除", zap.String("name", name))
	return nil
}

// Clean 去除空白、丟棄沒有名稱的列，(名稱, 連結) 重複時保留第一次的位置與最後一次的內容
func Clean(entries []Entry) []Entry {
	index := make(map[identity]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e = e.Trimmed()
		if e.Name == "" {
			continue
		}
		id := e.identity()
		if i, ok := index[id]; ok {
			out[i] = e
			continue
		}
		index[id] = len(out)
		out = append(out, e)
	}
	return out
}
