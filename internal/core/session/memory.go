package session

import (
	"context"
	"sync"
	"time"

	"fridge-chef/internal/core/recommend"
)

type memoryEntry struct {
	state     recommend.State
	expiresAt time.Time
}

// MemoryStore 單一行程內的工作階段儲存，閒置超過 TTL 的項目在存取時清除
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ recommend.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore 創建記憶體工作階段儲存
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load 讀取狀態；不存在或已過期時返回空狀態
func (s *MemoryStore) Load(_ context.Context, id string) (recommend.State, error) {
	if err := validateID(id); err != nil {
		return recommend.State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return recommend.State{}, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return recommend.State{}, nil
	}
	return e.state, nil
}

// Save 保存狀態並延長有效期
func (s *MemoryStore) Save(_ context.Context, id string, state recommend.State) error {
	if err := validateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = memoryEntry{state: state, expiresAt: now.Add(s.ttl)}
	return nil
}

// Reset 清除已推薦紀錄
func (s *MemoryStore) Reset(ctx context.Context, id string) error {
	state, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	return s.Save(ctx, id, state.Reset())
}

// Len 目前保存的工作階段數
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
