// Package config loads server settings from .env and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

const defaultSessionSecret = "secret_key_change_me"

// Config holds the server settings.
type Config struct {
	Host           string `mapstructure:"HOST"`
	Port           string `mapstructure:"PORT"`
	SessionSecret  string `mapstructure:"SESSION_SECRET"`
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	RedisPrefix    string `mapstructure:"REDIS_PREFIX"`
	SeedSampleData bool   `mapstructure:"SEED_SAMPLE_DATA"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	Env            string `mapstructure:"APP_ENV"`
	SiteURL        string `mapstructure:"SITE_URL"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// The session is process-wide, so only local clients are served by default.
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("STORAGE_BACKEND", BackendSQLite)
	v.SetDefault("SQLITE_PATH", "data/forum.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PREFIX", "gameforum:")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SITE_URL", "http://localhost:8080")
	// 生产环境不生成示例账号
	v.SetDefault("SEED_SAMPLE_DATA", !isProductionEnv(v.GetString("APP_ENV")))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return isProductionEnv(c.Env)
}

func isProductionEnv(env string) bool {
	return env == "production" || env == "prod"
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.StorageBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.IsProduction() && (c.SessionSecret == defaultSessionSecret || len(c.SessionSecret) < 32) {
		return errors.New("SESSION_SECRET must be changed and at least 32 characters in production")
	}
	return nil
}
