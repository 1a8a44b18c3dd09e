package display_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/display"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *time.Time {
	d, _ := pantry.ParseDate(s)
	return d
}

func sampleViews() []pantry.View {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return []pantry.View{
		pantry.NewView(pantry.Item{Name: "두부", Expiry: date("2026-03-11"), Storage: pantry.Fridge}, today),
		pantry.NewView(pantry.Item{Name: "김치", Expiry: date("2026-04-10"), Storage: pantry.Fridge}, today),
		pantry.NewView(pantry.Item{Name: "우유", Expiry: date("2026-03-01"), Storage: pantry.Fridge}, today),
		pantry.NewView(pantry.Item{Name: "간장", Storage: pantry.Fridge}, today),
		pantry.NewView(pantry.Item{Name: "삼겹살", Expiry: date("2026-06-01"), Storage: pantry.Freezer}, today),
	}
}

func TestExpiryLabel(t *testing.T) {
	views := sampleViews()

	assert.Equal(t, "(1일 남음)", display.ExpiryLabel(views[0]))
	assert.Equal(t, "(31일 남음)", display.ExpiryLabel(views[1]))
	assert.Equal(t, "(지남!!)", display.ExpiryLabel(views[2]))
	assert.Equal(t, "(소스/조미료)", display.ExpiryLabel(views[3]))
}

func TestPrintPantry_GroupsByStorage(t *testing.T) {
	var buf bytes.Buffer
	display.PrintPantry(&buf, sampleViews())
	out := buf.String()

	assert.Contains(t, out, "5 items")
	assert.Contains(t, out, "두부 (1일 남음)")
	assert.Contains(t, out, "간장 (소스/조미료)")
	fridge := bytes.Index(buf.Bytes(), []byte("냉장"))
	freezer := bytes.Index(buf.Bytes(), []byte("냉동"))
	pork := bytes.Index(buf.Bytes(), []byte("삼겹살"))
	assert.True(t, fridge < freezer && freezer < pork)
}

func TestPrintPantry_Empty(t *testing.T) {
	var buf bytes.Buffer
	display.PrintPantry(&buf, nil)
	assert.Contains(t, buf.String(), "비어 있습니다")
}

func TestPrintPantryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.PrintPantryJSON(&buf, sampleViews()[:1]))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "두부", got[0]["name"])
	assert.Equal(t, "urgent", got[0]["status"])
	assert.EqualValues(t, 1, got[0]["days_left"])

	buf.Reset()
	require.NoError(t, display.PrintPantryJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintRecipes_HidesNonHTTPLinks(t *testing.T) {
	var buf bytes.Buffer
	display.PrintRecipes(&buf, []recipe.Entry{
		{Name: "김치찌개", Ingredients: "김치, 두부", Link: "https://example.com/kimchi"},
		{Name: "라면", Ingredients: "라면", Link: "엄마표"},
	})
	out := buf.String()

	assert.Contains(t, out, "2 items")
	assert.Contains(t, out, "https://example.com/kimchi")
	assert.NotContains(t, out, "엄마표")
}

func TestPrintRecommendation(t *testing.T) {
	var buf bytes.Buffer
	display.PrintRecommendation(&buf, recommend.Result{
		Recommendation: recommend.Recommendation{
			Recipe:      recipe.Entry{Name: "김치찌개"},
			Score:       3,
			Total:       4,
			Missing:     []string{"두부"},
			MissingText: "두부",
			Link:        "https://example.com/kimchi",
			Reset:       true,
		},
		Narration: &recommend.Narration{Name: "김치찌개", Reason: recommend.FallbackReason, Missing: "두부"},
	})
	out := buf.String()

	assert.Contains(t, out, "처음부터 다시")
	assert.Contains(t, out, "김치찌개")
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, recommend.FallbackReason)
	assert.Contains(t, out, "부족한 재료: 두부")
	assert.Contains(t, out, "https://example.com/kimchi")
}

func TestPrintRecommendation_FullyStocked(t *testing.T) {
	var buf bytes.Buffer
	display.PrintRecommendation(&buf, recommend.Result{
		Recommendation: recommend.Recommendation{
			Recipe:       recipe.Entry{Name: "콩나물국"},
			MissingText:  "없음 (모든 재료 보유)",
			FullyStocked: true,
		},
	})

	assert.Contains(t, buf.String(), "없음 (모든 재료 보유)")
	assert.NotContains(t, buf.String(), "부족한 재료")
}

func TestPrintCook(t *testing.T) {
	var buf bytes.Buffer
	display.PrintCook(&buf, recommend.CookResult{
		Recipe: recipe.Entry{Name: "김치찌개", Steps: "1. 볶는다\n2. 끓인다"},
		Used:   []string{"김치", "삼겹살"},
	})
	out := buf.String()

	assert.Contains(t, out, "방금 쓴 재료: 김치, 삼겹살")
	assert.Contains(t, out, "2. 끓인다")
}
