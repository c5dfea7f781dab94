package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/essaylens/internal/llm"
)

func clearVendorKeys(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "essaylens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearVendorKeys(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ScorerNone, cfg.Scorer.Mode)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.AnalysisTimeout)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.False(t, cfg.Store.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	clearVendorKeys(t)
	path := writeConfig(t, `
log:
  level: debug
  format: console
scorer:
  mode: llm
llm:
  provider: gemini
  gemini:
    api_key: g-key
    model: gemini-pro
  retry:
    max_attempts: 5
    initial_wait: 250ms
cache:
  backend: redis
  ttl: 1h
  redis:
    addr: redis:6379
    db: 2
server:
  addr: 127.0.0.1:9090
  analysis_timeout: 5s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ScorerLLM, cfg.Scorer.Mode)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "gemini-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.LLM.Retry.InitialWait)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, DefaultRedisPrefix, cfg.Cache.Redis.Prefix)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.AnalysisTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	clearVendorKeys(t)
	path := writeConfig(t, "server:\n  addr: :7000\n")
	t.Setenv("ESSAYLENS_SERVER_ADDR", ":9999")
	t.Setenv("ESSAYLENS_CACHE_BACKEND", "none")
	t.Setenv("ESSAYLENS_SERVER_ANALYSIS_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, 2*time.Second, cfg.Server.AnalysisTimeout)
}

func TestLoad_EnvOverride_NestedKey(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("ESSAYLENS_SCORER_MODE", "llm")
	t.Setenv("ESSAYLENS_LLM_PROVIDER", "openai")
	t.Setenv("ESSAYLENS_LLM_OPENAI_API_KEY", "sk-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-env", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("ESSAYLENS_SCORER_MODE", "llm")
	t.Setenv("GEMINI_API_KEY", "g-vendor")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-vendor", cfg.LLM.Gemini.APIKey)
}

func TestLoad_LLMWithoutKeyFails(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("ESSAYLENS_SCORER_MODE", "llm")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ESSAYLENS_LLM_ANTHROPIC_API_KEY")
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigFile)

	_, err = Load(writeConfig(t, "server: ["))
	assert.ErrorIs(t, err, ErrConfigFile)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.TTL = time.Minute
	cfg.Server.Addr = ":1"
	cfg.LLM.Retry.MaxAttempts = 1
	ApplyDefaults(cfg)

	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, ":1", cfg.Server.Addr)
	assert.Equal(t, 1, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, DefaultMaxEssayRunes, cfg.Scorer.MaxEssayRunes)

	ApplyDefaults(nil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad scorer", func(c *Config) { c.Scorer.Mode = "bert" }, "scorer.mode"},
		{"mock llm", func(c *Config) { c.Scorer.Mode = ScorerLLM; c.LLM.Provider = llm.ProviderMock }, ""},
		{"bad cache", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis; c.Cache.Redis.Addr = "" }, "cache.redis.addr"},
		{"negative redis db", func(c *Config) { c.Cache.Backend = CacheRedis; c.Cache.Redis.DB = -1 }, "cache.redis.db"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
		{"no server addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero analysis timeout", func(c *Config) { c.Server.AnalysisTimeout = 0 }, "analysis_timeout"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWith_OverridesBeatEnv(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("ESSAYLENS_SCORER_MODE", "none")
	t.Setenv("OPENAI_API_KEY", "sk-vendor")

	cfg, err := LoadWith("", map[string]any{"scorer.mode": "llm"})
	require.NoError(t, err)
	assert.Equal(t, ScorerLLM, cfg.Scorer.Mode)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-vendor", cfg.LLM.OpenAI.APIKey)
}
