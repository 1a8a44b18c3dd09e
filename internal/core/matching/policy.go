package matching

import "strings"

// Category 食材分類
type Category int

const (
	// Literal 一般食材，需在冰箱中找到
	Literal Category = iota
	// Ignorable 常備的辛香料與調味料，永遠視為已有
	Ignorable
	// MeatEquivalent 可互相替代的豬肉部位
	MeatEquivalent
)

// String 返回分類名稱
func (c Category) String() string {
	switch c {
	case Ignorable:
		return "ignorable"
	case MeatEquivalent:
		return "meat_equivalent"
	default:
		return "literal"
	}
}

// GenericPork 肉類等價類的通用標籤
const GenericPork = "돼지고기"

// 常備辛香料與調味料，以子字串比對（"다진마늘" 包含 "마늘"）
var defaultIgnorable = []string{
	// 辛香料
	"대파", "쪽파", "실파", "양파", "마늘", "청양고추", "홍고추", "고추", "당근", "생강",
	// 醬料
	"진간장", "국간장", "양조간장", "간장", "고추장", "된장", "쌈장", "굴소스", "소스",
	// 糖與糖漿
	"설탕", "올리고당", "물엿", "매실청", "꿀",
	// 油
	"식용유", "참기름", "들기름", "올리브유", "카놀라유",
	// 其他調味
	"소금", "후추", "고춧가루", "식초", "맛술", "미림", "다시다", "육수", "케첩", "마요네즈", "깨",
}

// 太短、容易撞到其他詞的項目只做整詞比對（"콩나물" 不應因 "물" 被忽略）
var defaultIgnorableWords = []string{"물", "파"}

// 豬肉部位與絞肉，彼此及與 "돼지고기" 可互換
var defaultMeat = []string{
	GenericPork, "삼겹살", "목살", "앞다리살", "뒷다리살", "항정살", "갈매기살", "가브리살",
	"다짐육", "다진고기", "다진 고기", "간고기", "돼지 등갈비", "제육",
}

// Policy 比對規則：忽略清單、肉類等價類與通用標籤。
// 零值不可用，請用 DefaultPolicy 或 NewPolicy。
type Policy struct {
	ignorable      []string
	ignorableWords map[string]struct{}
	meat           []string
	generic        string
}

// DefaultPolicy 返回內建規則
func DefaultPolicy() *Policy {
	return NewPolicy(nil, nil)
}

// NewPolicy 在內建規則上追加設定檔提供的忽略項與肉類同義詞
func NewPolicy(extraIgnorable, extraMeat []string) *Policy {
	p := &Policy{
		ignorableWords: make(map[string]struct{}, len(defaultIgnorableWords)),
		generic:        GenericPork,
	}
	p.ignorable = appendNormalized(p.ignorable, defaultIgnorable)
	p.ignorable = appendNormalized(p.ignorable, extraIgnorable)
	p.meat = appendNormalized(p.meat, defaultMeat)
	p.meat = appendNormalized(p.meat, extraMeat)
	for _, w := range defaultIgnorableWords {
		p.ignorableWords[w] = struct{}{}
	}
	return p
}

func appendNormalized(dst, src []string) []string {
	for _, s := range src {
		if n := Normalize(s); n != "" {
			dst = append(dst, n)
		}
	}
	return dst
}

// Classify 對已清理的食材文字分類；順序與 Satisfied 的判斷順序一致
func (p *Policy) Classify(cleaned string) Category {
	switch {
	case p.isIgnorable(cleaned):
		return Ignorable
	case p.isMeat(cleaned):
		return MeatEquivalent
	default:
		return Literal
	}
}

func (p *Policy) isIgnorable(cleaned string) bool {
	if cleaned == "" {
		return false
	}
	for _, term := range p.ignorable {
		if strings.Contains(cleaned, term) {
			return true
		}
	}
	for _, word := range strings.Fields(cleaned) {
		if _, ok := p.ignorableWords[word]; ok {
			return true
		}
	}
	return false
}

func (p *Policy) isMeat(cleaned string) bool {
	if cleaned == "" {
		return false
	}
	for _, term := range p.meat {
		if strings.Contains(cleaned, term) {
			return true
		}
	}
	return false
}
