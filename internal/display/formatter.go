// Package display 以 lipgloss 在終端機輸出冰箱、食譜與推薦結果，並提供對應的 JSON 輸出
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/core/recommend"

	"github.com/charmbracelet/lipgloss"
)

// 終端機樣式
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	reasonStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("5"))
)

// ExpiryLabel 保存期限標籤：(소스/조미료)、(N일 남음)、(지남!!)
func ExpiryLabel(v pantry.View) string {
	switch {
	case v.DaysLeft == nil:
		return "(소스/조미료)"
	case *v.DaysLeft < 0:
		return "(지남!!)"
	default:
		return fmt.Sprintf("(%d일 남음)", *v.DaysLeft)
	}
}

func storageTitle(s pantry.Storage) string {
	if s == pantry.Freezer {
		return "냉동"
	}
	return "냉장"
}

// PrintPantry 依保存位置分組列出食材；剩餘不到 3 天的以紅色標示
func PrintPantry(w io.Writer, views []pantry.View) {
	fmt.Fprintf(w, "\n%s — %s\n",
		headerStyle.Render("냉장고"),
		cyanStyle.Render(fmt.Sprintf("%d items", len(views))),
	)
	if len(views) == 0 {
		fmt.Fprintf(w, "\n  %s\n\n", dimStyle.Render("비어 있습니다. `fridgectl pantry add` 로 재료를 추가하세요."))
		return
	}

	for _, storage := range []pantry.Storage{pantry.Fridge, pantry.Freezer} {
		printed := false
		for _, v := range views {
			if v.Storage != storage {
				continue
			}
			if !printed {
				fmt.Fprintf(w, "\n%s\n", titleStyle.Render(storageTitle(storage)))
				printed = true
			}
			label := ExpiryLabel(v)
			switch v.Status {
			case pantry.StatusExpired, pantry.StatusUrgent:
				label = urgentStyle.Render(label)
			default:
				label = dimStyle.Render(label)
			}
			fmt.Fprintf(w, "  • %s %s\n", v.Name, label)
		}
	}
	fmt.Fprintln(w)
}

// PrintPantryJSON 以 JSON 輸出食材
func PrintPantryJSON(w io.Writer, views []pantry.View) error {
	if views == nil {
		views = []pantry.View{}
	}
	return json.NewEncoder(w).Encode(views)
}

// PrintRecipes 列出食譜本
func PrintRecipes(w io.Writer, entries []recipe.Entry) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("레시피"),
		cyanStyle.Render(fmt.Sprintf("%d items", len(entries))),
	)
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\n", titleStyle.Render(e.Name))
		if e.Ingredients != "" {
			fmt.Fprintf(w, "    %s\n", e.Ingredients)
		}
		if link := e.DisplayLink(); link != "" {
			fmt.Fprintf(w, "    %s\n", dimStyle.Render(link))
		}
	}
	fmt.Fprintln(w)
}

// PrintRecipesJSON 以 JSON 輸出食譜本
func PrintRecipesJSON(w io.Writer, entries []recipe.Entry) error {
	if entries == nil {
		entries = []recipe.Entry{}
	}
	return json.NewEncoder(w).Encode(entries)
}

// PrintRecommendation 輸出一次推薦
func PrintRecommendation(w io.Writer, res recommend.Result) {
	if res.Reset {
		fmt.Fprintln(w, dimStyle.Render("모든 레시피를 한 번씩 추천했어요. 처음부터 다시 추천합니다."))
	}
	fmt.Fprintf(w, "\n%s %s  %s\n",
		headerStyle.Render("추천 메뉴:"),
		titleStyle.Render(res.Recipe.Name),
		cyanStyle.Render(fmt.Sprintf("%d/%d", res.Score, res.Total)),
	)
	if res.Narration != nil {
		fmt.Fprintf(w, "  %s\n", reasonStyle.Render(res.Narration.Reason))
	}
	if res.FullyStocked {
		fmt.Fprintf(w, "  %s\n", successStyle.Render("✅ "+res.MissingText))
	} else {
		fmt.Fprintf(w, "  %s\n", warningStyle.Render("⚠️ 부족한 재료: "+res.MissingText))
	}
	if res.Link != "" {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render("👉 "+res.Link))
	}
	fmt.Fprintln(w)
}

// PrintRecommendationsJSON 以 JSON 輸出多次推薦
func PrintRecommendationsJSON(w io.Writer, results []recommend.Result) error {
	if results == nil {
		results = []recommend.Result{}
	}
	return json.NewEncoder(w).Encode(results)
}

// PrintCook 輸出製作料理時用到的食材與步驟
func PrintCook(w io.Writer, res recommend.CookResult) {
	fmt.Fprintf(w, "\n%s %s\n", headerStyle.Render("요리하기:"), titleStyle.Render(res.Recipe.Name))
	if len(res.Used) > 0 {
		fmt.Fprintf(w, "  %s\n", urgentStyle.Render(fmt.Sprintf("🔥 방금 쓴 재료: %s", strings.Join(res.Used, ", "))))
	} else {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render("냉장고에서 사용한 재료가 없습니다."))
	}
	if res.Recipe.Steps != "" {
		fmt.Fprintf(w, "\n%s\n", res.Recipe.Steps)
	}
	fmt.Fprintln(w)
}

// PrintJSON 以 JSON 輸出任意值
func PrintJSON(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

// PrintSuccess prints a styled confirmation message.
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}
