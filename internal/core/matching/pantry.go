package matching

import (
	"sort"
	"strings"
)

// Set 冰箱食材集合：原始名稱與清理後名稱
type Set map[string]struct{}

// NewSet 以原樣字串建立集合（不做清理）
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has 判斷是否包含
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Sorted 返回排序後的內容，方便輸出與測試
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NormalizePantry 保留去除前後空白的原始名稱並加入清理後的名稱，丟棄清理後為空的項目，
// 並在有任何豬肉部位時補上 "돼지고기"。
// 冪等且單調：輸出包含每個非空輸入的原始名稱與清理後名稱。
func (p *Policy) NormalizePantry(names []string) Set {
	out := make(Set, 2*len(names)+1)
	hasMeat := false
	for _, name := range names {
		n := Normalize(name)
		if n == "" {
			continue
		}
		out[strings.TrimSpace(name)] = struct{}{}
		out[n] = struct{}{}
		if !hasMeat && p.isMeat(n) {
			hasMeat = true
		}
	}
	if hasMeat {
		out[p.generic] = struct{}{}
	}
	return out
}

// NormalizePantrySet 對已經是集合的輸入再做一次正規化
func (p *Policy) NormalizePantrySet(s Set) Set {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	return p.NormalizePantry(names)
}

// containsAny 冰箱中是否有任一項目是 text 的子字串
func (s Set) containsAny(text string) bool {
	for item := range s {
		if item != "" && strings.Contains(text, item) {
			return true
		}
	}
	return false
}
