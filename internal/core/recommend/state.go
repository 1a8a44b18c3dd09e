// Package recommend 依冰箱內容挑選下一道料理，並在同一個工作階段內避免重複推薦
package recommend

import (
	"fridge-chef/internal/core/recipe"
)

// State 工作階段狀態：已推薦過的食譜名稱與最後一次推薦
type State struct {
	ShownRecipeNames []string        `json:"shown_recipe_names"`
	Last             *Recommendation `json:"last,omitempty"`
}

// Excluded 已推薦過的名稱集合
func (s State) Excluded() map[string]struct{} {
	out := make(map[string]struct{}, len(s.ShownRecipeNames))
	for _, n := range s.ShownRecipeNames {
		out[n] = struct{}{}
	}
	return out
}

// Reset 清除已推薦紀錄，保留最後一次推薦
func (s State) Reset() State {
	return State{Last: s.Last}
}

// withShown 返回追加名稱後的新狀態，不修改原切片
func (s State) withShown(name string) State {
	shown := make([]string, len(s.ShownRecipeNames), len(s.ShownRecipeNames)+1)
	copy(shown, s.ShownRecipeNames)
	return State{ShownRecipeNames: append(shown, name), Last: s.Last}
}

// Recommendation 一次推薦的結果
type Recommendation struct {
	Recipe recipe.Entry `json:"recipe"`
	// Score 被滿足的食材片段數，Total 為片段總數
	Score int `json:"score"`
	Total int `json:"total"`
	// Missing 未被滿足的原始片段；為空時 FullyStocked 為 true
	Missing      []string `json:"missing"`
	MissingText  string   `json:"missing_text"`
	FullyStocked bool     `json:"fully_stocked"`
	Link         string   `json:"link,omitempty"`
	// Reset 這次推薦前已用完所有候選並自動重置
	Reset bool `json:"reset"`
}
