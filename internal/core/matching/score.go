package matching

import "strings"

// FullyStocked 所有食材都已備齊時的顯示文字
const FullyStocked = "없음 (모든 재료 보유)"

// segmentSeparators 食材以逗號分隔，也接受全形逗號與頓號
var segmentSeparators = strings.NewReplacer("，", ",", "、", ",")

// SplitSegments 以逗號切分食材欄位，去除前後空白並略過空片段
func SplitSegments(requiredIngredients string) []string {
	raw := strings.Split(segmentSeparators.Replace(requiredIngredients), ",")
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Score 被滿足的片段數；每個片段只算一次
func Score(m Matcher, requiredIngredients string, pantry Set) int {
	score := 0
	for _, seg := range SplitSegments(requiredIngredients) {
		if m.Satisfied(seg, pantry) {
			score++
		}
	}
	return score
}

// Missing 依原始順序返回未被滿足的片段，保留原始寫法（未清理）
func Missing(m Matcher, requiredIngredients string, pantry Set) []string {
	var missing []string
	for _, seg := range SplitSegments(requiredIngredients) {
		if !m.Satisfied(seg, pantry) {
			missing = append(missing, seg)
		}
	}
	return missing
}

// FormatMissing 將缺少的食材組成顯示文字；空清單顯示為 FullyStocked
func FormatMissing(missing []string) string {
	if len(missing) == 0 {
		return FullyStocked
	}
	return strings.Join(missing, ", ")
}
