package matching

import "strings"

// Matcher 判斷單一食材片段是否被冰箱滿足。
// 評分與選擇只依賴這個介面，比對規則可以替換。
type Matcher interface {
	Satisfied(segment string, pantry Set) bool
	NormalizePantry(names []string) Set
}

var _ Matcher = (*Policy)(nil)

// Satisfied 依序判斷，任一條成立即返回 true：
//  1. 清理片段
//  2. 含忽略清單項目
//  3. 含豬肉部位，且冰箱有 "돼지고기"
//  4. 冰箱任一項目是清理後文字的子字串（短的冰箱詞包含於長的需求文字）
func (p *Policy) Satisfied(segment string, pantry Set) bool {
	cleaned := Normalize(segment)
	if cleaned == "" {
		return false
	}
	if p.isIgnorable(cleaned) {
		return true
	}
	if p.isMeat(cleaned) && pantry.Has(p.generic) {
		return true
	}
	return pantry.containsAny(cleaned)
}

// UsedPantryItems 返回食譜實際用到的冰箱項目（原始名稱，保持輸入順序），
// 用於煮完後提示使用者哪些食材可能用完了。忽略清單不算使用。
func (p *Policy) UsedPantryItems(requiredIngredients string, pantryNames []string) []string {
	var cleanedSegments []string
	for _, seg := range SplitSegments(requiredIngredients) {
		if c := Normalize(seg); c != "" && !p.isIgnorable(c) {
			cleanedSegments = append(cleanedSegments, c)
		}
	}

	var used []string
	for _, name := range pantryNames {
		n := Normalize(name)
		if n == "" {
			continue
		}
		meat := p.isMeat(n)
		for _, seg := range cleanedSegments {
			if strings.Contains(seg, n) || (meat && p.isMeat(seg)) {
				used = append(used, name)
				break
			}
		}
	}
	return used
}
