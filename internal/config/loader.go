package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/essaylens/internal/llm"
)

const envPrefix = "ESSAYLENS"

// ErrConfigFile wraps failures reading or parsing the config file.
var ErrConfigFile = errors.New("config: cannot read config file")

// newViper builds a Viper with YAML files, the ESSAYLENS_ env prefix and
// "." -> "_" key mapping, so llm.openai.api_key reads
// ESSAYLENS_LLM_OPENAI_API_KEY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// Load reads the YAML file at path (skipped when path is empty), merges
// ESSAYLENS_* overrides, applies defaults and validates. When the LLM scorer
// is selected but the configured provider has no key, the vendors' standard
// *_API_KEY variables are probed and may switch the provider.
func Load(path string) (*Config, error) {
	return LoadWith(path, nil)
}

// LoadWith is Load with explicit overrides, keyed like the YAML file
// ("scorer.mode"). Overrides beat both the file and the environment.
func LoadWith(path string, overrides map[string]any) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrConfigFile, path, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(cfg)

	if cfg.Scorer.Mode == ScorerLLM && !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = found
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
