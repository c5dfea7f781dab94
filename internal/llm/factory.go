package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/essaylens/internal/logging"
)

// NewProvider builds the configured provider and wraps it as
// caller -> retry -> audit -> SDK. rec may be nil to skip the audit trail.
func NewProvider(ctx context.Context, cfg Config, rec Recorder, log logging.Logger) (Provider, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if rec != nil {
		p = WithAudit(p, cfg.Provider, rec, log.Named("audit"))
	}
	return WithRetry(p, cfg.Retry, log.Named("retry")), nil
}
