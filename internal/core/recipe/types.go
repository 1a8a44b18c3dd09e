// Package recipe 管理食譜本並從照片擷取食譜
package recipe

import (
	"context"
	"strings"

	"fridge-chef/internal/pkg/common"
)

// Entry 食譜本中的一筆食譜。Ingredients 為逗號分隔的自由文字。
type Entry struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Link        string `json:"link,omitempty"`
	Steps       string `json:"steps,omitempty"`
}

// Validate 在寫入儲存前檢查
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return common.NewValidationError("recipe name is required")
	}
	return nil
}

// Trimmed 去除各欄位前後空白
func (e Entry) Trimmed() Entry {
	return Entry{
		Name:        strings.TrimSpace(e.Name),
		Ingredients: strings.TrimSpace(e.Ingredients),
		Link:        strings.TrimSpace(e.Link),
		Steps:       strings.TrimSpace(e.Steps),
	}
}

// DisplayLink 只有 http(s) 連結才顯示
func (e Entry) DisplayLink() string {
	if common.IsHTTPURL(e.Link) {
		return strings.TrimSpace(e.Link)
	}
	return ""
}

// identity 批次編輯時的去重鍵
type identity struct {
	name string
	link string
}

func (e Entry) identity() identity {
	return identity{name: strings.TrimSpace(e.Name), link: strings.TrimSpace(e.Link)}
}

// Draft 從照片擷取的食譜草稿，確認後才會存入食譜本
type Draft struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
}

// Empty 三個欄位都沒有內容
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Name) == "" &&
		strings.TrimSpace(d.Ingredients) == "" &&
		strings.TrimSpace(d.Steps) == ""
}

// Entry 轉成食譜本項目
func (d Draft) Entry(link string) Entry {
	return Entry{Name: d.Name, Ingredients: d.Ingredients, Steps: d.Steps, Link: link}.Trimmed()
}

// Store 食譜資料來源；SaveRecipes 整批覆寫
type Store interface {
	LoadRecipes(ctx context.Context) ([]Entry, error)
	SaveRecipes(ctx context.Context, entries []Entry) error
	AppendRecipe(ctx context.Context, entry Entry) error
}
