package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the generation boundary: one prompt in, one response out.
type Provider interface {
	// Generate sends a request to the model and returns its raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is an optional system prompt.
	System string

	// Messages is the conversation. Tutor prompts are single-turn, so this
	// usually holds one user message.
	Messages []Message

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request from a plain prompt.
func UserPrompt(prompt string, maxTokens int, temperature float64) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Response holds the model's output.
type Response struct {
	// Content is the model's reply exactly as returned.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the response content as trimmed plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
