// Package config loads essaylens settings from an optional YAML file and
// ESSAYLENS_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/abhisek/essaylens/internal/llm"
	"github.com/abhisek/essaylens/internal/logging"
)

// Config is the complete runtime configuration.
type Config struct {
	Log    logging.Config `mapstructure:"log"`
	LLM    llm.Config     `mapstructure:"llm"`
	Scorer ScorerConfig   `mapstructure:"scorer"`
	Cache  CacheConfig    `mapstructure:"cache"`
	Store  StoreConfig    `mapstructure:"store"`
	Server ServerConfig   `mapstructure:"server"`
}

// Scorer modes.
const (
	ScorerNone = "none"
	ScorerLLM  = "llm"
)

// ScorerConfig selects where model scores come from.
type ScorerConfig struct {
	Mode          string `mapstructure:"mode"`
	MaxEssayRunes int    `mapstructure:"max_essay_runes"`
}

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CacheConfig controls memoization of model scores.
type CacheConfig struct {
	Backend    string        `mapstructure:"backend"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// StoreConfig controls the local audit database for model calls.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ServerConfig configures `essaylens serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AnalysisTimeout time.Duration `mapstructure:"analysis_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Validate reports the first semantic problem in c.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	switch c.Scorer.Mode {
	case ScorerNone:
	case ScorerLLM:
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("config: llm: %w", err)
		}
	default:
		return fmt.Errorf("config: scorer.mode %q is invalid; expected none|llm", c.Scorer.Mode)
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("config: cache.redis.addr is required for the redis backend")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("config: cache.redis.db must be >= 0, got %d", c.Cache.Redis.DB)
		}
	default:
		return fmt.Errorf("config: cache.backend %q is invalid; expected none|memory|redis", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config: cache.ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Server.AnalysisTimeout <= 0 {
		return fmt.Errorf("config: server.analysis_timeout must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive")
	}
	return nil
}
