package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/aitutor/internal/llm"
)

// Generator produces a parsed quiz for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string) (*Data, error)
}

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the model response. Zero leaves
	// the provider default.
	MaxTokens int

	// Temperature controls output randomness. Zero leaves the provider
	// default.
	Temperature float64
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator with a single model call per quiz.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. A nil logger uses slog.Default().
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate asks the model for a quiz on topic and parses the reply.
// Provider errors are wrapped and returned as-is; there is no retry.
func (g *LLMGenerator) Generate(ctx context.Context, topic string) (*Data, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)
	resp, err := g.provider.Generate(ctx, llm.UserPrompt(BuildPrompt(topic), g.config.MaxTokens, g.config.Temperature))
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	res, err := Parse(resp.Text())
	for _, skipped := range res.Skipped {
		g.logger.Warn(skipped.Error(), "topic", topic)
	}
	if err != nil {
		return nil, err
	}

	g.logger.Debug("quiz generated", "topic", topic, "questions", res.Data.Len(), "skipped", len(res.Skipped))
	return &res.Data, nil
}
