package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/store"
)

// ErrNoAPIKey is returned by NewProviderFromEnv when no provider
// credentials could be found.
var ErrNoAPIKey = errors.New("no LLM API key configured; set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv resolves cfg against the environment and builds the
// provider. Explicit FOUNDERPATH_* settings win; otherwise the standard
// provider key variables are probed.
func NewProviderFromEnv(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, Config, error) {
	ApplyEnv(&cfg)
	if !cfg.HasKey() {
		discovered, ok := DiscoverConfig(cfg)
		if !ok {
			return nil, cfg, ErrNoAPIKey
		}
		cfg = discovered
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	p, err := NewProvider(ctx, cfg, eventRepo, log)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
