// Package explain answers free-form student questions with a single model call.
package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/aitutor/internal/llm"
)

// ErrEmptyQuery is returned for a blank question or topic.
var ErrEmptyQuery = errors.New("question or topic is required")

// Config controls the Service.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended explainer settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048}
}

// Service produces explanations.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates a Service over provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// Prompt returns the text sent to the model for query.
func Prompt(query string) string {
	return fmt.Sprintf("Explain %s clearly with examples", query)
}

// Explain returns the model's explanation of query.
func (s *Service) Explain(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)
	resp, err := s.provider.Generate(ctx, llm.UserPrompt(Prompt(query), s.config.MaxTokens, s.config.Temperature))
	if err != nil {
		return "", fmt.Errorf("explanation failed: %w", err)
	}
	return resp.Text(), nil
}
