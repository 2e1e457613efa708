package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/store"
)

// Deps carries the optional collaborators the provider decorators use.
type Deps struct {
	EventRepo store.EventRepo
	Logger    *zap.Logger
	Observer  Observer
}

// NewProvider creates a Provider from configuration.
// The base provider is wrapped as: caller → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, deps.EventRepo, deps.Logger, deps.Observer)
	retried := WithRetry(logged, cfg.Retry, deps.Logger)

	return WithTimeout(retried, cfg.Timeout), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
