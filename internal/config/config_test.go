package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/levelup/internal/assessment"
)

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Assessment.Policy != assessment.PolicyPooled {
		t.Errorf("Assessment.Policy = %q, want %q", cfg.Assessment.Policy, assessment.PolicyPooled)
	}
	if cfg.Assessment.Total != 18 || cfg.Assessment.PerLevelQuota != 3 || cfg.Assessment.PassThreshold != 70 {
		t.Errorf("Assessment = %+v", cfg.Assessment)
	}
	if cfg.Quiz.MinQuestions != 10 || cfg.Quiz.MaxQuestions != 20 || cfg.Quiz.DefaultQuestions != 10 {
		t.Errorf("Quiz = %+v", cfg.Quiz)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("LLM.Timeout = %s, want 30s", cfg.LLM.Timeout)
	}
	if cfg.LLM.RetryAttempts != 1 {
		t.Errorf("LLM.RetryAttempts = %d, want 1", cfg.LLM.RetryAttempts)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	body := `
server:
  addr: ":9090"
assessment:
  policy: fixed_total
  total: 12
llm:
  provider: mock
  timeout: 5s
`
	if err := os.WriteFile(filepath.Join(dir, "levelup.yaml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Assessment.Policy != assessment.PolicyFixedTotal || cfg.Assessment.Total != 12 {
		t.Errorf("Assessment = %+v", cfg.Assessment)
	}
	if cfg.LLM.Provider != "mock" || cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEVELUP_SERVER_ADDR", ":7070")
	t.Setenv("LEVELUP_LLM_ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", cfg.Server.Addr)
	}
	if cfg.LLM.Anthropic.APIKey != "sk-test" {
		t.Errorf("Anthropic.APIKey = %q", cfg.LLM.Anthropic.APIKey)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown policy", func(c *Config) { c.Assessment.Policy = "adaptive" }},
		{"zero total", func(c *Config) { c.Assessment.Total = 0 }},
		{"zero quota", func(c *Config) { c.Assessment.PerLevelQuota = 0 }},
		{"threshold over 100", func(c *Config) { c.Assessment.PassThreshold = 101 }},
		{"max below min", func(c *Config) { c.Quiz.MaxQuestions = 5 }},
		{"default out of range", func(c *Config) { c.Quiz.DefaultQuestions = 25 }},
		{"negative rate", func(c *Config) { c.Server.RateLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLLMProviderConfig(t *testing.T) {
	clearVendorKeys(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := cfg.LLMProviderConfig(); ok {
		t.Fatal("expected no provider without configuration")
	}

	cfg.LLM.Provider = "openai"
	cfg.LLM.OpenAI.APIKey = "sk-openai"
	cfg.LLM.RetryAttempts = 3
	cfg.LLM.Timeout = 10 * time.Second

	lc, ok := cfg.LLMProviderConfig()
	if !ok {
		t.Fatal("expected provider config")
	}
	if lc.Provider != "openai" || lc.OpenAI.APIKey != "sk-openai" || lc.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected openai config: %+v", lc.OpenAI)
	}
	if lc.Retry.MaxAttempts != 3 || lc.Timeout != 10*time.Second {
		t.Errorf("Retry.MaxAttempts = %d, Timeout = %s", lc.Retry.MaxAttempts, lc.Timeout)
	}
	if err := lc.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLLMProviderConfig_Discover(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lc, ok := cfg.LLMProviderConfig()
	if !ok {
		t.Fatal("expected discovered provider")
	}
	if lc.Provider != "gemini" || lc.Gemini.APIKey != "g-key" {
		t.Errorf("discovered = %q / %q", lc.Provider, lc.Gemini.APIKey)
	}
	if lc.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s", lc.Timeout)
	}
}
