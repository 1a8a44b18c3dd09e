package config_test

import (
	"testing"
	"time"

	"fridge-chef/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("APP_AI_API_KEY", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, 8*time.Second, cfg.AI.NarrationTimeout)
	assert.Equal(t, 4, cfg.AI.Workers)
	assert.Equal(t, 32, cfg.AI.QueueSize)
	assert.Equal(t, config.BackendMemory, cfg.Session.Backend)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Image.MaxImages)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-key-123456")
	t.Setenv("OPENROUTER_MODEL", "vision/model-a")
	t.Setenv("OPENROUTER_FALLBACK_MODELS", "vision/model-b,vision/model-a")
	t.Setenv("DB_PATH", "/tmp/pantry.db")
	t.Setenv("APP_SESSION_BACKEND", "redis")
	t.Setenv("APP_AI_NARRATION_TIMEOUT", "3s")
	t.Setenv("APP_MATCHING_EXTRA_IGNORABLE", "깨소금,연두")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, []string{"vision/model-a", "vision/model-b"}, cfg.AI.Models())
	assert.Equal(t, "/tmp/pantry.db", cfg.Storage.Path)
	assert.Equal(t, config.BackendRedis, cfg.Session.Backend)
	assert.Equal(t, 3*time.Second, cfg.AI.NarrationTimeout)
	assert.Equal(t, []string{"깨소금", "연두"}, cfg.Matching.ExtraIgnorable)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage driver", map[string]string{"APP_STORAGE_DRIVER": "postgres"}},
		{"unknown session backend", map[string]string{"APP_SESSION_BACKEND": "etcd"}},
		{"ai enabled without key", map[string]string{"APP_AI_ENABLED": "true", "OPENROUTER_API_KEY": ""}},
		{"zero cache size", map[string]string{"APP_CACHE_MAX_SIZE": "0"}},
		{"zero ai workers", map[string]string{"OPENROUTER_API_KEY": "sk-or-test-key-123456", "APP_AI_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", config.MaskAPIKey("short"))
	assert.Equal(t, "sk-o...3456", config.MaskAPIKey("sk-or-test-key-123456"))
}

func TestNeedsRedis(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.NeedsRedis())

	cfg.Cache = config.CacheConfig{Enabled: false, Backend: config.BackendRedis}
	assert.False(t, cfg.NeedsRedis())

	cfg.Cache.Enabled = true
	assert.True(t, cfg.NeedsRedis())

	cfg = &config.Config{Session: config.SessionConfig{Backend: config.BackendRedis}}
	assert.True(t, cfg.NeedsRedis())
}
