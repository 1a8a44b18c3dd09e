package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	AI          AIConfig        `mapstructure:"ai"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Storage     StorageConfig   `mapstructure:"storage"`
	Session     SessionConfig   `mapstructure:"session"`
	Matching    MatchingConfig  `mapstructure:"matching"`
	Narration   NarrationConfig `mapstructure:"narration"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Image       ImageConfig     `mapstructure:"image"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFile     string          `mapstructure:"log_file"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// AIConfig 生成式 AI 設定（OpenAI 相容的 chat completions）
type AIConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	Model            string        `mapstructure:"model"`
	FallbackModels   []string      `mapstructure:"fallback_models"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	Timeout          time.Duration `mapstructure:"timeout"`
	NarrationTimeout time.Duration `mapstructure:"narration_timeout"`
	// Workers 同時呼叫上游的數量，QueueSize 為等待中的上限
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// Models 依序返回要嘗試的模型，去除空白與重複
func (c AIConfig) Models() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range append([]string{c.Model}, c.FallbackModels...) {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 冰箱與食譜的持久化設定
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// SessionConfig 推薦狀態的保存方式
type SessionConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// MatchingConfig 追加的比對詞彙
type MatchingConfig struct {
	ExtraIgnorable []string `mapstructure:"extra_ignorable"`
	ExtraMeat      []string `mapstructure:"extra_meat"`
}

// NarrationConfig 推薦理由設定
type NarrationConfig struct {
	FallbackReason string `mapstructure:"fallback_reason"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
	MaxImages    int   `mapstructure:"max_images"`
	MaxDimension int   `mapstructure:"max_dimension"`
}

// 支援的後端
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	DriverSQLite  = "sqlite"
)

// LoadConfig 載入設定：.env（可選）→ 設定檔（可選）→ 環境變數
func LoadConfig() (*Config, error) {
	// .env 不存在時直接使用環境變數與預設值
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定常用環境變量
	bindings := map[string]string{
		"ai.api_key":         "OPENROUTER_API_KEY",
		"ai.model":           "OPENROUTER_MODEL",
		"ai.fallback_models": "OPENROUTER_FALLBACK_MODELS",
		"ai.max_tokens":      "MODEL_MAX_TOKENS",
		"cache.enabled":      "CACHE_ENABLED",
		"redis.addr":         "REDIS_ADDR",
		"redis.password":     "REDIS_PASSWORD",
		"storage.path":       "DB_PATH",
		"rate_limit.enabled": "RATE_LIMIT_ENABLED",
		"rate_limit.window":  "RATE_LIMIT_WINDOW",
		"dedup_window":       "DEDUP_WINDOW",
		"log_level":          "LOG_LEVEL",
		"log_file":           "LOG_FILE",
		"server.port":        "PORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// ai.enabled 沒有預設值，未設定時依金鑰決定
	if err := v.BindEnv("ai.enabled"); err != nil {
		return nil, fmt.Errorf("failed to bind ai.enabled: %w", err)
	}

	// 設定檔：./config.yaml 或 ~/.fridge-chef/config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.fridge-chef")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 有金鑰即啟用 AI，除非明確關閉
	if !v.IsSet("ai.enabled") {
		config.AI.Enabled = config.AI.APIKey != ""
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// NeedsRedis 快取或工作階段選用 redis 後端時需要連線
func (c *Config) NeedsRedis() bool {
	return (c.Cache.Enabled && c.Cache.Backend == BackendRedis) || c.Session.Backend == BackendRedis
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "fridge-chef")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "45s")
	v.SetDefault("server.max_body_bytes", 20*1024*1024)

	// AI 設定
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.model", "google/gemini-2.5-flash")
	v.SetDefault("ai.fallback_models", []string{"google/gemini-2.0-flash-001", "qwen/qwen2.5-vl-72b-instruct:free"})
	v.SetDefault("ai.max_tokens", 1000)
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("ai.narration_timeout", "8s")
	v.SetDefault("ai.workers", 4)
	v.SetDefault("ai.queue_size", 32)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Redis 設定
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// 儲存設定
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", "fridge-chef.db")

	// 推薦狀態
	v.SetDefault("session.backend", BackendMemory)
	v.SetDefault("session.ttl", "12h")

	// 比對詞彙與推薦理由
	v.SetDefault("matching.extra_ignorable", []string{})
	v.SetDefault("matching.extra_meat", []string{})
	v.SetDefault("narration.fallback_reason", "")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	v.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB
	v.SetDefault("image.max_images", 5)
	v.SetDefault("image.max_dimension", 1600)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("ai enabled but api key is empty")
		}
		if len(config.AI.Models()) == 0 {
			return fmt.Errorf("ai enabled but no model configured")
		}
		if config.AI.Workers <= 0 || config.AI.QueueSize <= 0 {
			return fmt.Errorf("invalid ai queue settings")
		}
	}
	if config.AI.NarrationTimeout <= 0 {
		return fmt.Errorf("invalid ai narration timeout")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}
	if err := validateBackend("cache.backend", config.Cache.Backend); err != nil {
		return err
	}
	if err := validateBackend("session.backend", config.Session.Backend); err != nil {
		return err
	}
	if config.Cache.Backend == BackendRedis || config.Session.Backend == BackendRedis {
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis backend selected but redis addr is empty")
		}
	}

	switch config.Storage.Driver {
	case BackendMemory:
	case DriverSQLite:
		if config.Storage.Path == "" {
			return fmt.Errorf("sqlite storage requires a path")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Image.MaxImages <= 0 {
		return fmt.Errorf("invalid image max images")
	}

	return nil
}

func validateBackend(key, backend string) error {
	switch backend {
	case BackendMemory, BackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown %s %q", key, backend)
	}
}
