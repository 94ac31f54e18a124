package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/aitutor/internal/store"
)

// NewProvider creates a Provider from configuration. When eventRepo is
// non-nil the provider is wrapped with request logging. There is no retry
// layer: every call is a single attempt.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo), nil
}

// Factory builds providers on demand for a caller-supplied credential,
// falling back to the configured key when the caller supplies none.
type Factory struct {
	cfg       Config
	eventRepo store.EventRepo
}

// NewFactory creates a Factory over cfg. eventRepo may be nil.
func NewFactory(cfg Config, eventRepo store.EventRepo) *Factory {
	return &Factory{cfg: cfg, eventRepo: eventRepo}
}

// Provider returns a provider authenticated with apiKey.
func (f *Factory) Provider(ctx context.Context, apiKey string) (Provider, error) {
	return NewProvider(ctx, f.cfg.WithAPIKey(apiKey), f.eventRepo)
}

// Config returns the factory's base configuration.
func (f *Factory) Config() Config {
	return f.cfg
}
