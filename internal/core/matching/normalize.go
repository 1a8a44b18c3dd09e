// Package matching 判斷食譜所需食材是否能由冰箱內容滿足。
//
// 食譜的食材欄位是手寫或 AI 擷取的自由文字（"돼지고기 목살 200g(송송 썬 것)"），
// 因此比對刻意寬鬆：先清掉份量、單位與備註，再依忽略清單、肉類等價類與字串包含判斷。
package matching

import (
	"regexp"
	"strings"
)

// 份量單位。拉丁單位以 \b 結尾；韓文單位後面不可緊接韓文字，
// 否則 "1 대파" 會被誤吃成 "파"。RE2 沒有 lookahead，因此把後一個字元捕獲後放回。
const (
	latinUnits  = `(?:kg|mg|ml|g|cc|l|tbsp|tsp|oz|lb|t)\b`
	koreanUnits = `(?:큰술|작은술|티스푼|스푼|숟가락|숟갈|컵|봉지|봉|개|대|줌|쪽|장|모|팩|마리|톨|알|인분|꼬집|근|단|포기|통|캔|줄기|송이|토막)`
	unitSuffix  = `(?:\s*` + latinUnits + `|\s*` + koreanUnits + `(?P<tail>[^\p{Hangul}]|$))?`
)

// 近似量詞與度量名詞，例如 "한 바퀴"、"반 줌"、"약간의 꼬집"
const (
	approximators = `(?:한|두|세|네|반|약간의|약간|조금)`
	measureNouns  = `(?:바퀴|꼬집|줌|주먹|티스푼|스푼|숟가락|숟갈|큰술|작은술|컵|개|쪽|모|장|알|톨|봉지|캔|마리|송이)`
)

var (
	parentheticalRe = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]|（[^（）]*）`)
	fractionRe      = regexp.MustCompile(`(?i)\d+\s*/\s*\d+` + unitSuffix)
	quantityRe      = regexp.MustCompile(`(?i)\d+(?:\.\d+)?` + unitSuffix)
	punctuationRe   = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	qualitativeRe   = regexp.MustCompile(approximators + `\s*` + measureNouns)
)

// 單獨出現時視為份量描述的詞
var noiseWords = map[string]struct{}{
	"약간":  {},
	"조금":  {},
	"적당량": {},
	"적당히": {},
	"소량":  {},
	"취향껏": {},
}

// Normalize 清除食材文字中的備註、份量、單位與標點。
// 純函數且對任何輸入都不會失敗；結果為不動點，因此 Normalize(Normalize(x)) == Normalize(x)。
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	// 每一輪只會刪除文字，直到不再變化
	for {
		next := normalizePass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizePass(s string) string {
	s = removeParentheticals(s)
	s = fractionRe.ReplaceAllString(s, " ${tail}")
	s = quantityRe.ReplaceAllString(s, " ${tail}")
	s = punctuationRe.ReplaceAllString(s, " ")
	s = qualitativeRe.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, noise := noiseWords[f]; noise {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// removeParentheticals 由內而外移除巢狀括號
func removeParentheticals(s string) string {
	for {
		next := parentheticalRe.ReplaceAllString(s, " ")
		if next == s {
			return s
		}
		s = next
	}
}
