package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/essaylens/internal/analysis"
	"github.com/abhisek/essaylens/internal/catalog"
	"github.com/abhisek/essaylens/internal/config"
	"github.com/abhisek/essaylens/internal/llm"
	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/metrics"
	"github.com/abhisek/essaylens/internal/modelscore"
	"github.com/abhisek/essaylens/internal/store"
)

// loadConfig reads --config and applies the --model override when the
// command has one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides := map[string]any{}
	if f := cmd.Flags().Lookup("model"); f != nil && f.Changed {
		overrides["scorer.mode"] = f.Value.String()
	}
	return config.LoadWith(path, overrides)
}

// newLogger builds the process logger. defaultLevel applies when the config
// leaves log.level empty.
func newLogger(cfg logging.Config, defaultLevel string) (logging.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = defaultLevel
	}
	return logging.NewLogger(cfg)
}

// deps is the wired analysis stack of one command invocation.
type deps struct {
	service *analysis.Service
	closers []func() error
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}

// buildDeps wires catalog, model scorer, cache and audit store into an
// analysis service.
func buildDeps(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log logging.Logger, m *metrics.Metrics) (*deps, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	d := &deps{}
	scorer, err := d.buildScorer(ctx, cmd, cfg, log, m)
	if err != nil {
		d.Close()
		return nil, err
	}

	svc, err := analysis.NewService(analysis.Options{
		Catalog: cat,
		Scorer:  scorer,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		d.Close()
		return nil, err
	}
	d.service = svc
	return d, nil
}

func (d *deps) buildScorer(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log logging.Logger, m *metrics.Metrics) (analysis.ModelScorer, error) {
	if cfg.Scorer.Mode != config.ScorerLLM {
		return nil, nil
	}

	var rec llm.Recorder
	if cfg.Store.Enabled {
		dbPath, err := resolveDBPath(cmd, cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		d.closers = append(d.closers, st.Close)
		rec = st
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, rec, log.Named("llm"))
	if err != nil {
		return nil, err
	}
	llmScorer := modelscore.NewLLMScorer(provider, cfg.Scorer.MaxEssayRunes).WithTimeout(cfg.LLM.Timeout)

	var cache modelscore.Cache
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		cache = modelscore.NewMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		d.closers = append(d.closers, client.Close)
		cache = modelscore.NewRedisCache(client, cfg.Cache.Redis.Prefix, cfg.Cache.TTL)
	default:
		return llmScorer, nil
	}
	return modelscore.NewCached(llmScorer, llmScorer.ModelID(), cache, log.Named("cache"), m), nil
}
