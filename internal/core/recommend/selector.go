package recommend

import (
	"sort"

	"fridge-chef/internal/core/matching"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Ranked 一道食譜與其分數
type Ranked struct {
	Recipe recipe.Entry
	Score  int
}

// Rank 排除已推薦的食譜後評分，只保留分數大於 0 的項目，依分數遞減穩定排序
func Rank(m matching.Matcher, pantry matching.Set, recipes []recipe.Entry, excluded map[string]struct{}) (ranked []Ranked, candidates []recipe.Entry) {
	for _, r := range recipes {
		if _, skip := excluded[r.Name]; skip {
			continue
		}
		candidates = append(candidates, r)
		if score := matching.Score(m, r.Ingredients, pantry); score > 0 {
			ranked = append(ranked, Ranked{Recipe: r, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, candidates
}

// SelectNext 選出下一道料理。
// 沒有任何分數大於 0 時退回第一個未推薦的食譜（分數 0）；
// 全部都推薦過時 exhausted 為 true。
func SelectNext(m matching.Matcher, pantry matching.Set, recipes []recipe.Entry, excluded map[string]struct{}) (pick Ranked, exhausted bool) {
	ranked, candidates := Rank(m, pantry, recipes, excluded)
	switch {
	case len(ranked) > 0:
		return ranked[0], false
	case len(candidates) > 0:
		return Ranked{Recipe: candidates[0]}, false
	default:
		return Ranked{}, true
	}
}

// Recommend 以目前狀態挑選下一道料理，返回推薦與新的狀態。
// 食譜本或冰箱為空時返回 ErrDataUnavailable；
// 候選用完時自動重置一次再從完整清單挑選，仍沒有結果則返回 ErrNoCandidate。
func Recommend(m matching.Matcher, state State, pantryNames []string, recipes []recipe.Entry) (Recommendation, State, error) {
	if len(recipes) == 0 {
		return Recommendation{}, state, common.ErrEmptyRecipeBook
	}
	pantry := m.NormalizePantry(pantryNames)
	if len(pantry) == 0 {
		return Recommendation{}, state, common.ErrEmptyPantry
	}

	reset := false
	pick, exhausted := SelectNext(m, pantry, recipes, state.Excluded())
	if exhausted {
		common.LogInfo("所有候選皆已推薦，重置推薦紀錄", zap.Int("shown", len(state.ShownRecipeNames)))
		state = state.Reset()
		reset = true
		pick, exhausted = SelectNext(m, pantry, recipes, nil)
		if exhausted {
			return Recommendation{}, state, common.ErrNoCandidate
		}
	}

	missing := matching.Missing(m, pick.Recipe.Ingredients, pantry)
	rec := Recommendation{
		Recipe:       pick.Recipe,
		Score:        pick.Score,
		Total:        len(matching.SplitSegments(pick.Recipe.Ingredients)),
		Missing:      missing,
		MissingText:  matching.FormatMissing(missing),
		FullyStocked: len(missing) == 0,
		Link:         pick.Recipe.DisplayLink(),
		Reset:        reset,
	}
	if rec.Missing == nil {
		rec.Missing = []string{}
	}

	next := state.withShown(pick.Recipe.Name)
	next.Last = &rec
	return rec, next, nil
}
