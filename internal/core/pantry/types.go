// Package pantry 管理冰箱食材：名稱、保存期限與保存位置
package pantry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridge-chef/internal/pkg/common"
)

// Storage 保存位置
type Storage string

const (
	Fridge  Storage = "fridge"
	Freezer Storage = "freezer"
)

// ParseStorage 解析保存位置，空字串視為冷藏；接受韓文 냉장/냉동
func ParseStorage(s string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fridge", "냉장", "냉장고":
		return Fridge, nil
	case "freezer", "냉동", "냉동실":
		return Freezer, nil
	default:
		return "", common.NewValidationError(fmt.Sprintf("unknown storage %q (fridge|freezer)", s))
	}
}

// Item 冰箱中的一項食材。Expiry 為 nil 表示醬料或調味料，沒有保存期限。
type Item struct {
	Name    string     `json:"name"`
	Expiry  *time.Time `json:"expiry,omitempty"`
	Storage Storage    `json:"storage"`
}

// Key 食材識別：忽略大小寫並合併空白
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Validate 在寫入儲存前檢查
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return common.NewValidationError("ingredient name is required")
	}
	if i.Storage != Fridge && i.Storage != Freezer {
		return common.NewValidationError(fmt.Sprintf("invalid storage %q", i.Storage))
	}
	return nil
}

// Store 冰箱資料來源；SavePantry 整批覆寫
type Store interface {
	LoadPantry(ctx context.Context) ([]Item, error)
	SavePantry(ctx context.Context, items []Item) error
	AppendPantry(ctx context.Context, item Item) error
}

// Status 保存期限狀態
type Status string

const (
	StatusIndefinite Status = "indefinite"
	StatusExpired    Status = "expired"
	StatusUrgent     Status = "urgent"
	StatusFresh      Status = "fresh"
)

// UrgentDays 剩餘天數小於此值即標示為緊急
const UrgentDays = 3

// View 列表顯示用的食材，附帶剩餘天數與狀態
type View struct {
	Item
	DaysLeft *int   `json:"days_left,omitempty"`
	Status   Status `json:"status"`
}

// NewView 以 today 的日期計算剩餘天數
func NewView(item Item, today time.Time) View {
	v := View{Item: item, Status: StatusIndefinite}
	if item.Expiry == nil {
		return v
	}

	days := DaysBetween(today, *item.Expiry)
	v.DaysLeft = &days
	switch {
	case days < 0:
		v.Status = StatusExpired
	case days < UrgentDays:
		v.Status = StatusUrgent
	default:
		v.Status = StatusFresh
	}
	return v
}

// DaysBetween 以日曆日計算 to - from，不受時區與夏令時間影響
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// DateOnly 只保留日曆日，存成 UTC 午夜
func DateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseDate 解析 YYYY-MM-DD；空字串返回 nil
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return &d, nil
}

var errNoStore = errors.New("pantry store is not configured")
