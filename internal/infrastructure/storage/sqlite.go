package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PantryItemModel 冰箱食材資料表
type PantryItemModel struct {
	ID        uint       `gorm:"primaryKey"`
	Position  int        `gorm:"not null;index"`
	Name      string     `gorm:"not null"`
	Expiry    *time.Time `gorm:"type:date"`
	Storage   string     `gorm:"not null;default:fridge"`
	CreatedAt time.Time
}

// TableName 指定資料表名稱
func (PantryItemModel) TableName() string { return "pantry_items" }

// RecipeModel 食譜資料表
type RecipeModel struct {
	ID          uint   `gorm:"primaryKey"`
	Position    int    `gorm:"not null;index"`
	Name        string `gorm:"not null;index"`
	Ingredients string `gorm:"type:text"`
	Link        string
	Steps       string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName 指定資料表名稱
func (RecipeModel) TableName() string { return "recipes" }

// SQLiteStore 以 GORM + SQLite 保存資料，保留插入順序
type SQLiteStore struct {
	db *gorm.DB
}

var _ Backend = (*SQLiteStore)(nil)

// OpenSQLite 開啟資料庫並執行 AutoMigrate；path 為空時使用記憶體資料庫
func OpenSQLite(path string, debug bool) (*SQLiteStore, error) {
	if path == "" {
		path = ":memory:"
	}

	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 記憶體資料庫每條連線各自獨立，只能保留一條
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&PantryItemModel{}, &RecipeModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	common.LogInfo("資料庫已開啟", zap.String("path", path))
	return &SQLiteStore{db: db}, nil
}

// LoadPantry 依位置排序讀取
func (s *SQLiteStore) LoadPantry(ctx context.Context) ([]pantry.Item, error) {
	var rows []PantryItemModel
	if err := s.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}
	items := make([]pantry.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, pantry.Item{Name: r.Name, Expiry: r.Expiry, Storage: pantry.Storage(r.Storage)})
	}
	return items, nil
}

// SavePantry 在交易中刪除全部再依序寫入
func (s *SQLiteStore) SavePantry(ctx context.Context, items []pantry.Item) error {
	if err := validatePantry(items); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&PantryItemModel{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([]PantryItemModel, 0, len(items))
		for i, it := range items {
			rows = append(rows, pantryRow(i, it))
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return common.ErrStoreWrite.WithErr(fmt.Errorf("save pantry: %w", err))
	}
	return nil
}

// AppendPantry 寫在最後
func (s *SQLiteStore) AppendPantry(ctx context.Context, item pantry.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextPosition(tx, &PantryItemModel{})
		if err != nil {
			return err
		}
		row := pantryRow(next, item)
		return tx.Create(&row).Error
	})
	if err != nil {
		return common.ErrStoreWrite.WithErr(fmt.Errorf("append pantry: %w", err))
	}
	return nil
}

// LoadRecipes 依位置排序讀取
func (s *SQLiteStore) LoadRecipes(ctx context.Context) ([]recipe.Entry, error) {
	var rows []RecipeModel
	if err := s.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	entries := make([]recipe.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, recipe.Entry{Name: r.Name, Ingredients: r.Ingredients, Link: r.Link, Steps: r.Steps})
	}
	return entries, nil
}

// SaveRecipes 在交易中刪除全部再依序寫入
func (s *SQLiteStore) SaveRecipes(ctx context.Context, entries []recipe.Entry) error {
	if err := validateRecipes(entries); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&RecipeModel{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		rows := make([]RecipeModel, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, recipeRow(i, e))
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return common.ErrStoreWrite.WithErr(fmt.Errorf("save recipes: %w", err))
	}
	return nil
}

// AppendRecipe 寫在最後
func (s *SQLiteStore) AppendRecipe(ctx context.Context, entry recipe.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextPosition(tx, &RecipeModel{})
		if err != nil {
			return err
		}
		row := recipeRow(next, entry)
		return tx.Create(&row).Error
	})
	if err != nil {
		return common.ErrStoreWrite.WithErr(fmt.Errorf("append recipe: %w", err))
	}
	return nil
}

// Ping 檢查資料庫連線
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 關閉資料庫
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func nextPosition(tx *gorm.DB, model interface{}) (int, error) {
	var maxPos sql.NullInt64
	if err := tx.Model(model).Select("MAX(position)").Row().Scan(&maxPos); err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func pantryRow(pos int, it pantry.Item) PantryItemModel {
	return PantryItemModel{Position: pos, Name: it.Name, Expiry: pantry.DateOnly(it.Expiry), Storage: string(it.Storage)}
}

func recipeRow(pos int, e recipe.Entry) RecipeModel {
	return RecipeModel{Position: pos, Name: e.Name, Ingredients: e.Ingredients, Link: e.Link, Steps: e.Steps}
}
