package modelscore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/metrics"
	"github.com/abhisek/essaylens/internal/scoring"
)

// Scorer produces model scores for an essay.
type Scorer interface {
	Score(ctx context.Context, essay string) (*scoring.Aspects, error)
}

// Cached memoizes a Scorer. Concurrent requests for the same essay share
// one upstream call. Cache failures degrade to a direct call.
type Cached struct {
	inner     Scorer
	namespace string
	cache     Cache
	group     singleflight.Group
	log       logging.Logger
	metrics   *metrics.Metrics
}

// NewCached wraps inner. namespace separates entries from different models;
// callers pass the model ID.
func NewCached(inner Scorer, namespace string, cache Cache, log logging.Logger, m *metrics.Metrics) *Cached {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Cached{inner: inner, namespace: namespace, cache: cache, log: log, metrics: m}
}

// Key derives the cache key for essay.
func (c *Cached) Key(essay string) string {
	sum := sha256.Sum256([]byte(c.namespace + "\x00" + essay))
	return hex.EncodeToString(sum[:])
}

func (c *Cached) Score(ctx context.Context, essay string) (*scoring.Aspects, error) {
	key := c.Key(essay)

	a, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.CacheLookup(true)
		return &a, nil
	case !errors.Is(err, ErrCacheMiss):
		c.log.Warn("model score cache read failed", logging.Err(err))
	}
	c.metrics.CacheLookup(false)

	// The shared call outlives any single caller; LLMScorer's own timeout
	// bounds it.
	upstream := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		res, err := c.inner.Score(upstream, essay)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, errors.New("modelscore: scorer returned no scores")
		}
		if err := c.cache.Set(upstream, key, *res); err != nil {
			c.log.Warn("model score cache write failed", logging.Err(err))
		}
		return *res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		out := r.Val.(scoring.Aspects)
		return &out, nil
	}
}
