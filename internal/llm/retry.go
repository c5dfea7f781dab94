package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/essaylens/internal/logging"
)

// RetryProvider retries transient errors with exponential backoff and jitter.
// A schema violation is retried once; context errors and truncation never.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    logging.Logger
}

// WithRetry wraps a Provider with retry logic. log may be nil.
func WithRetry(p Provider, cfg RetryConfig, log logging.Logger) Provider {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case classFatal:
			return nil, err
		case classInvalid:
			if invalidRetried {
				return nil, err
			}
			invalidRetried = true
		}

		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.Warn("model call failed, retrying",
			logging.Int("attempt", attempt+1),
			logging.Duration("wait", wait),
			logging.Err(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
