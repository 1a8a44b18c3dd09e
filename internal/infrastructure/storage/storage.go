// Package storage 保存冰箱食材與食譜本
package storage

import (
	"context"
	"fmt"

	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/infrastructure/config"
)

// Backend 同時提供冰箱與食譜本的儲存
type Backend interface {
	pantry.Store
	recipe.Store
	Ping(ctx context.Context) error
	Close() error
}

// New 依設定建立儲存後端
func New(cfg config.StorageConfig, debug bool) (Backend, error) {
	switch cfg.Driver {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		return OpenSQLite(cfg.Path, debug)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func validatePantry(items []pantry.Item) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateRecipes(entries []recipe.Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
