package llm

import (
	"fmt"
	"os"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults. Gemini is the
// default provider; keys are never part of the defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
	}
}

// ApplyEnv overlays AITUTOR_* environment variables onto cfg.
func (c Config) ApplyEnv() Config {
	if p := os.Getenv("AITUTOR_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}

	if k := os.Getenv("AITUTOR_GEMINI_API_KEY"); k != "" {
		c.Gemini.APIKey = k
	}
	if m := os.Getenv("AITUTOR_GEMINI_MODEL"); m != "" {
		c.Gemini.Model = m
	}

	if k := os.Getenv("AITUTOR_OPENAI_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if m := os.Getenv("AITUTOR_OPENAI_MODEL"); m != "" {
		c.OpenAI.Model = m
	}
	if u := os.Getenv("AITUTOR_OPENAI_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}

	if k := os.Getenv("AITUTOR_ANTHROPIC_API_KEY"); k != "" {
		c.Anthropic.APIKey = k
	}
	if m := os.Getenv("AITUTOR_ANTHROPIC_MODEL"); m != "" {
		c.Anthropic.Model = m
	}

	if k := os.Getenv("AITUTOR_OPENROUTER_API_KEY"); k != "" {
		c.OpenRouter.APIKey = k
	}
	if m := os.Getenv("AITUTOR_OPENROUTER_MODEL"); m != "" {
		c.OpenRouter.Model = m
	}

	return c
}

// providerKeyEnv lists the conventional key variables for each provider,
// in lookup order.
var providerKeyEnv = map[string][]string{
	"gemini":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"openai":     {"OPENAI_API_KEY"},
	"anthropic":  {"ANTHROPIC_API_KEY"},
	"openrouter": {"OPENROUTER_API_KEY"},
}

// DiscoverKey returns the first non-empty conventional key variable for
// provider, or "" when none is set.
func DiscoverKey(provider string) string {
	return firstEnv(providerKeyEnv[provider]...)
}

// WithDiscoveredKey fills a missing key for the selected provider from its
// conventional environment variable. The provider itself never changes, so
// a key discovered for another vendor is ignored.
func (c Config) WithDiscoveredKey() Config {
	if c.HasAPIKey() {
		return c
	}
	return c.WithAPIKey(DiscoverKey(c.Provider))
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// WithAPIKey returns a copy of c whose selected provider uses key.
// An empty key leaves the configured one in place.
func (c Config) WithAPIKey(key string) Config {
	if key == "" {
		return c
	}
	switch c.Provider {
	case "gemini":
		c.Gemini.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
	return c
}

// HasAPIKey reports whether the selected provider has a key configured.
func (c Config) HasAPIKey() bool {
	return c.Validate() == nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: AITUTOR_GEMINI_API_KEY is required for the gemini provider", ErrMissingCredential)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: AITUTOR_OPENAI_API_KEY is required for the openai provider", ErrMissingCredential)
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: AITUTOR_ANTHROPIC_API_KEY is required for the anthropic provider", ErrMissingCredential)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: AITUTOR_OPENROUTER_API_KEY is required for the openrouter provider", ErrMissingCredential)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
