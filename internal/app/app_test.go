package app_test

import (
	"context"
	"testing"
	"time"

	"fridge-chef/internal/app"
	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: config.BackendMemory},
		Session: config.SessionConfig{Backend: config.BackendMemory, TTL: time.Hour},
		AI:      config.AIConfig{NarrationTimeout: time.Second},
	}
}

func TestNew_WithoutAI(t *testing.T) {
	ctx := context.Background()
	a, err := app.New(ctx, memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.AI.Enabled())
	assert.Nil(t, a.Intake)
	assert.Nil(t, a.Redis)

	_, err = a.Pantry.Add(ctx, pantry.AddRequest{Name: "삼겹살"})
	require.NoError(t, err)
	_, err = a.Recipes.Add(ctx, recipe.Entry{Name: "제육볶음", Ingredients: "돼지고기 앞다리살 300g, 고추장, 양파"})
	require.NoError(t, err)

	res, err := a.Recommend.Next(ctx, "cli", true)
	require.NoError(t, err)
	assert.Equal(t, "제육볶음", res.Recipe.Name)
	assert.True(t, res.FullyStocked)
	require.NotNil(t, res.Narration)
	assert.Equal(t, recommend.FallbackReason, res.Narration.Reason)
}

func TestNew_WithAI(t *testing.T) {
	cfg := memoryConfig()
	cfg.AI = config.AIConfig{
		Enabled: true,
		APIKey:  "sk-test",
		BaseURL: "http://127.0.0.1:1",
		Model:   "test/model",
		Timeout: time.Second,
	}
	cfg.Cache = config.CacheConfig{Enabled: true, Backend: config.BackendMemory, MaxSize: 10, TTL: time.Minute}
	cfg.Narration.FallbackReason = "오늘의 추천"

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.AI.Enabled())
	assert.NotNil(t, a.Intake)
}

func TestNew_InvalidStorage(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "postgres"

	_, err := app.New(context.Background(), cfg)
	assert.Error(t, err)
}
