package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func anthropicMessage(w http.ResponseWriter, text, stop string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	})
}

func anthropicError(w http.ResponseWriter, status int, typ string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": typ, "message": http.StatusText(status)},
	})
}

// newTestAnthropicProvider points the real constructor at handler and
// counts the requests it receives.
func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) (*AnthropicProvider, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p, &hits
}

func TestAnthropicProvider_StructuredQuestion(t *testing.T) {
	var sent map[string]any
	p, _ := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decode request: %v", err)
		}
		anthropicMessage(w, `{"question":"Which is a prime?","options":["4","6","7","9"],"correct_answer":"7"}`, "end_turn")
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write multiple-choice questions.",
		Messages:  []Message{{Role: RoleUser, Content: "One question on primes."}},
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("StopReason = %q, want end", resp.StopReason)
	}
	if sent["model"] != "claude-haiku-4-5-20251001" {
		t.Errorf("model = %v, want the resolved id", sent["model"])
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{
			name: "rate limit",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "7")
				anthropicError(w, http.StatusTooManyRequests, "rate_limit_error")
			},
			check: func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) && e.RetryAfter == 7*time.Second },
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				anthropicError(w, http.StatusInternalServerError, "api_error")
			},
			check: func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
		{
			name: "truncated",
			handler: func(w http.ResponseWriter, r *http.Request) {
				anthropicMessage(w, `{"question":"Which`, "max_tokens")
			},
			check: func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
		{
			name: "schema violation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				anthropicMessage(w, `{"question":"Which is a prime?"}`, "end_turn")
			},
			check: func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, hits := newTestAnthropicProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "One question."}},
				Schema:    questionSchema(),
				MaxTokens: 100,
			})
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
			if got := hits.Load(); got != 1 {
				t.Errorf("requests = %d, want 1 (SDK retries disabled)", got)
			}
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
