// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"curconv/internal/cache"
	"curconv/internal/provider"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds the complete application configuration.
type Config struct {
	Source    SourceConfig
	Cache     CacheConfig
	Freshness FreshnessConfig
	Log       LogConfig
}

// SourceConfig holds settings for the rate document source.
type SourceConfig struct {
	URL        string `mapstructure:"url"`
	TimeoutSec int    `mapstructure:"timeout_sec"` // 0 disables the timeout
	UserAgent  string `mapstructure:"user_agent"`
}

// CacheConfig holds settings for the local rate document cache.
type CacheConfig struct {
	Backend   string `mapstructure:"backend"` // "file" or "redis"
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisKey  string `mapstructure:"redis_key"`
}

// FreshnessConfig holds the publication cutoff used by the freshness policy.
type FreshnessConfig struct {
	PublishHourUTC int `mapstructure:"publish_hour_utc"`
	GraceMinutes   int `mapstructure:"grace_minutes"`
}

// Grace returns the grace period as a duration.
func (f FreshnessConfig) Grace() time.Duration {
	return time.Duration(f.GraceMinutes) * time.Minute
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// .env is optional; stdout belongs to conversion output, so stay quiet.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config search paths
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "cur"))
	}

	v.SetEnvPrefix("CUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.url", provider.DefaultECBURL)
	v.SetDefault("source.timeout_sec", 10)
	v.SetDefault("source.user_agent", "cur/1.0")
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.path", cache.DefaultPath())
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_key", cache.DefaultRedisKey)
	v.SetDefault("freshness.publish_hour_utc", 14)
	v.SetDefault("freshness.grace_minutes", 60)
	v.SetDefault("log.level", "warn")
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Source.URL == "" {
		errs = append(errs, fmt.Errorf("source.url is required"))
	}
	if c.Source.TimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("source.timeout_sec must be non-negative, got %d", c.Source.TimeoutSec))
	}

	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Path == "" {
			errs = append(errs, fmt.Errorf("cache.path is required for the file backend"))
		}
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("cache.redis_addr is required for the redis backend (set CUR_CACHE_REDIS_ADDR)"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be %q or %q, got %q", BackendFile, BackendRedis, c.Cache.Backend))
	}

	if c.Freshness.PublishHourUTC < 0 || c.Freshness.PublishHourUTC > 23 {
		errs = append(errs, fmt.Errorf("freshness.publish_hour_utc must be between 0 and 23, got %d", c.Freshness.PublishHourUTC))
	}
	if c.Freshness.GraceMinutes < 0 {
		errs = append(errs, fmt.Errorf("freshness.grace_minutes must be non-negative, got %d", c.Freshness.GraceMinutes))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
