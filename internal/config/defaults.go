package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/essaylens/internal/llm"
)

const (
	DefaultLogFormat = "json"

	DefaultScorerMode    = ScorerNone
	DefaultMaxEssayRunes = 12000

	DefaultCacheBackend    = CacheMemory
	DefaultCacheTTL        = 24 * time.Hour
	DefaultCacheMaxEntries = 1024
	DefaultRedisAddr       = "localhost:6379"
	DefaultRedisPrefix     = "essaylens:scores:"

	DefaultServerAddr      = ":8080"
	DefaultAnalysisTimeout = 30 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-value fields. Explicit values always win.
// log.level stays empty so each command can pick its own default.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	llmDefaults := llm.DefaultConfig()

	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llmDefaults.Provider
	}
	setIfEmpty(&cfg.LLM.Anthropic.Model, llmDefaults.Anthropic.Model)
	setIfEmpty(&cfg.LLM.OpenAI.Model, llmDefaults.OpenAI.Model)
	setIfEmpty(&cfg.LLM.Gemini.Model, llmDefaults.Gemini.Model)
	setIfEmpty(&cfg.LLM.OpenRouter.Model, llmDefaults.OpenRouter.Model)
	if cfg.LLM.Retry.MaxAttempts == 0 {
		cfg.LLM.Retry = llmDefaults.Retry
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = llmDefaults.Timeout
	}

	setIfEmpty(&cfg.Scorer.Mode, DefaultScorerMode)
	if cfg.Scorer.MaxEssayRunes == 0 {
		cfg.Scorer.MaxEssayRunes = DefaultMaxEssayRunes
	}

	setIfEmpty(&cfg.Cache.Backend, DefaultCacheBackend)
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	setIfEmpty(&cfg.Cache.Redis.Addr, DefaultRedisAddr)
	setIfEmpty(&cfg.Cache.Redis.Prefix, DefaultRedisPrefix)

	setIfEmpty(&cfg.Server.Addr, DefaultServerAddr)
	if cfg.Server.AnalysisTimeout == 0 {
		cfg.Server.AnalysisTimeout = DefaultAnalysisTimeout
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// registerKeys declares every key so AutomaticEnv can bind it during
// Unmarshal. Viper only resolves env vars for keys it already knows.
func registerKeys(v *viper.Viper) {
	d := Default()
	defaults := map[string]any{
		"log.level":        "",
		"log.format":       d.Log.Format,
		"log.output_paths": []string{},

		"llm.provider":            d.LLM.Provider,
		"llm.anthropic.api_key":   "",
		"llm.anthropic.model":     d.LLM.Anthropic.Model,
		"llm.anthropic.base_url":  "",
		"llm.openai.api_key":      "",
		"llm.openai.model":        d.LLM.OpenAI.Model,
		"llm.openai.base_url":     "",
		"llm.gemini.api_key":      "",
		"llm.gemini.model":        d.LLM.Gemini.Model,
		"llm.gemini.base_url":     "",
		"llm.openrouter.api_key":  "",
		"llm.openrouter.model":    d.LLM.OpenRouter.Model,
		"llm.openrouter.base_url": "",
		"llm.retry.max_attempts":  d.LLM.Retry.MaxAttempts,
		"llm.retry.initial_wait":  d.LLM.Retry.InitialWait,
		"llm.retry.max_wait":      d.LLM.Retry.MaxWait,
		"llm.retry.multiplier":    d.LLM.Retry.Multiplier,
		"llm.timeout":             d.LLM.Timeout,

		"scorer.mode":            d.Scorer.Mode,
		"scorer.max_essay_runes": d.Scorer.MaxEssayRunes,

		"cache.backend":        d.Cache.Backend,
		"cache.ttl":            d.Cache.TTL,
		"cache.max_entries":    d.Cache.MaxEntries,
		"cache.redis.addr":     d.Cache.Redis.Addr,
		"cache.redis.password": "",
		"cache.redis.db":       0,
		"cache.redis.prefix":   d.Cache.Redis.Prefix,

		"store.enabled": false,
		"store.path":    "",

		"server.addr":             d.Server.Addr,
		"server.analysis_timeout": d.Server.AnalysisTimeout,
		"server.read_timeout":     d.Server.ReadTimeout,
		"server.write_timeout":    d.Server.WriteTimeout,
		"server.shutdown_timeout": d.Server.ShutdownTimeout,
		"server.max_body_bytes":   d.Server.MaxBodyBytes,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}
