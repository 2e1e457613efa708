package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"questions":[]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"appropriate":true}`)})

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if string(resp.Content) != `{"questions":[]}` || resp.Usage.TotalTokens != 15 || resp.StopReason != "end" || resp.Model != "mock" {
		t.Errorf("first response = %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &rl) {
		t.Errorf("second: err = %v, want *ErrRateLimit", err)
	}

	resp, err = mock.Generate(context.Background(), Request{})
	if err != nil || string(resp.Content) != `{"appropriate":true}` {
		t.Errorf("third: %v %v", resp, err)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Errorf("drained queue: err = %v, want *ErrProviderUnavailable", err)
	}

	if mock.CallCount() != 4 || mock.Calls[0].System != "sys" {
		t.Errorf("calls = %d, first system = %q", mock.CallCount(), mock.Calls[0].System)
	}
}

func TestMockProvider_DelayHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`), Delay: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := mock.Generate(ctx, Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestCallContext(t *testing.T) {
	ctx := context.Background()
	if PurposeFrom(ctx) != "unknown" || UserFrom(ctx) != "" {
		t.Fatalf("empty context: purpose %q user %q", PurposeFrom(ctx), UserFrom(ctx))
	}

	ctx = WithUser(WithPurpose(ctx, "question-gen"), "u-42")
	if PurposeFrom(ctx) != "question-gen" || UserFrom(ctx) != "u-42" {
		t.Fatalf("purpose %q user %q", PurposeFrom(ctx), UserFrom(ctx))
	}
	if PurposeFrom(WithPurpose(ctx, "")) != "unknown" {
		t.Error("an empty purpose should read as unknown")
	}
}

func TestNewProvider_DecoratorChain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	repo := &recordingRepo{}

	p, err := NewProvider(context.Background(), cfg, Deps{EventRepo: repo})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Fatalf("outermost provider = %T, want *TimeoutProvider", p)
	}

	ctx := WithUser(WithPurpose(context.Background(), "topic-check"), "u-1")
	var unavail *ErrProviderUnavailable
	if _, err := p.Generate(ctx, Request{}); !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want the empty mock's *ErrProviderUnavailable", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	if e := repo.events[0]; e.Success || e.Purpose != "topic-check" || e.UserID != "u-1" {
		t.Errorf("event = %+v", e)
	}

	cfg.Provider = "carrier-pigeon"
	if _, err := NewProvider(context.Background(), cfg, Deps{}); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}

func TestConfig_Validate(t *testing.T) {
	withProvider := func(name string, mutate func(*Config)) Config {
		cfg := DefaultConfig()
		cfg.Provider = name
		if mutate != nil {
			mutate(&cfg)
		}
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     withProvider("anthropic", nil),
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     withProvider("anthropic", func(c *Config) { c.Anthropic.APIKey = "sk-test" }),
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     withProvider("openai", nil),
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     withProvider("openrouter", func(c *Config) { c.OpenRouter.APIKey = "sk-or" }),
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     withProvider("mock", nil),
			wantErr: false,
		},
		{
			name:    "zero attempts",
			cfg:     withProvider("mock", func(c *Config) { c.Retry.MaxAttempts = 0 }),
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     withProvider("mock", func(c *Config) { c.Timeout = -time.Second }),
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     withProvider("unknown", nil),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_NoRetryAndDeadline(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("MaxAttempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
}
