package storage

import (
	"context"
	"sync"

	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
)

// MemoryStore 行程內儲存，用於測試與不需要持久化的情境
type MemoryStore struct {
	mu      sync.RWMutex
	pantry  []pantry.Item
	recipes []recipe.Entry
}

var _ Backend = (*MemoryStore)(nil)

// NewMemoryStore 創建空的記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadPantry 返回複本
func (s *MemoryStore) LoadPantry(_ context.Context) ([]pantry.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pantry.Item, len(s.pantry))
	for i, it := range s.pantry {
		out[i] = copyItem(it)
	}
	return out, nil
}

// SavePantry 整批覆寫
func (s *MemoryStore) SavePantry(_ context.Context, items []pantry.Item) error {
	if err := validatePantry(items); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantry = make([]pantry.Item, len(items))
	for i, it := range items {
		s.pantry[i] = copyItem(it)
	}
	return nil
}

// AppendPantry 追加一筆
func (s *MemoryStore) AppendPantry(_ context.Context, item pantry.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantry = append(s.pantry, copyItem(item))
	return nil
}

// LoadRecipes 返回複本
func (s *MemoryStore) LoadRecipes(_ context.Context) ([]recipe.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]recipe.Entry(nil), s.recipes...), nil
}

// SaveRecipes 整批覆寫
func (s *MemoryStore) SaveRecipes(_ context.Context, entries []recipe.Entry) error {
	if err := validateRecipes(entries); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append([]recipe.Entry(nil), entries...)
	return nil
}

// AppendRecipe 追加一筆
func (s *MemoryStore) AppendRecipe(_ context.Context, entry recipe.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append(s.recipes, entry)
	return nil
}

// Ping 永遠可用
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close 無資源需釋放
func (s *MemoryStore) Close() error { return nil }

func copyItem(it pantry.Item) pantry.Item {
	if it.Expiry != nil {
		t := *it.Expiry
		it.Expiry = &t
	}
	return it
}
