package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := newGeminiProvider(context.Background(), GeminiConfig{APIKey: "test-key", Model: "gemini-flash"}, server.URL)
	if err != nil {
		t.Fatalf("new gemini provider: %v", err)
	}
	return p
}

func geminiTextReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     30,
			"candidatesTokenCount": 120,
			"totalTokenCount":      150,
		},
		"modelVersion": "gemini-2.0-flash-001",
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-lite", "gemini-2.0-flash-lite"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			gotPrompt = body.Contents[0].Parts[0].Text
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiTextReply("Plants use sunlight to make glucose.", "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), UserPrompt("Explain Photosynthesis clearly with examples", 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotPath, "gemini-2.0-flash:generateContent") {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotPrompt != "Explain Photosynthesis clearly with examples" {
		t.Errorf("prompt = %q", gotPrompt)
	}
	if resp.Text() != "Plants use sunlight to make glucose." {
		t.Errorf("text = %q", resp.Text())
	}
	if resp.Model != "gemini-2.0-flash-001" {
		t.Errorf("model = %q", resp.Model)
	}
	if resp.Usage.InputTokens != 30 || resp.Usage.OutputTokens != 120 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
}

func TestGeminiProvider_EmptyTruncatedReply(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiTextReply("", "MAX_TOKENS"))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("quiz", 5, 0))
	var maxErr *ErrMaxTokensExceeded
	if !errors.As(err, &maxErr) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		check   func(error) bool
	}{
		{
			name:    "invalid key",
			status:  http.StatusBadRequest,
			message: "API key not valid. Please pass a valid API key.",
			check:   func(err error) bool { var e *ErrAuth; return errors.As(err, &e) },
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			message: "permission denied",
			check:   func(err error) bool { var e *ErrAuth; return errors.As(err, &e) },
		},
		{
			name:    "quota",
			status:  http.StatusTooManyRequests,
			message: "Resource has been exhausted",
			check:   func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) },
		},
		{
			name:    "server",
			status:  http.StatusInternalServerError,
			message: "internal",
			check:   func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"code":    tt.status,
						"message": tt.message,
						"status":  http.StatusText(tt.status),
					},
				})
			}

			p := newTestGeminiProvider(t, handler)
			_, err := p.Generate(context.Background(), UserPrompt("test", 0, 0))
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
		})
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

