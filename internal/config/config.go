// Package config loads service configuration from an optional levelup.yaml
// file and LEVELUP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/levelup/internal/assessment"
	"github.com/abhisek/levelup/internal/llm"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	Quiz       QuizConfig       `mapstructure:"quiz"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
	// RateLimit is the sustained number of generation requests per second
	// accepted per user. Burst allows short spikes above it.
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // empty selects store.DefaultDBPath
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty disables the rotating file sink
}

type LLMConfig struct {
	Provider      string        `mapstructure:"provider"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	Anthropic     ProviderKey   `mapstructure:"anthropic"`
	OpenAI        ProviderKey   `mapstructure:"openai"`
	Gemini        ProviderKey   `mapstructure:"gemini"`
	OpenRouter    ProviderKey   `mapstructure:"openrouter"`
}

type ProviderKey struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	SiteURL string `mapstructure:"site_url"` // openrouter attribution only
}

type AssessmentConfig struct {
	Policy        string `mapstructure:"policy"`
	Total         int    `mapstructure:"total"`
	PerLevelQuota int    `mapstructure:"per_level_quota"`
	PassThreshold int    `mapstructure:"pass_threshold"`
	PoolQuestions int    `mapstructure:"pool_questions"`
}

type QuizConfig struct {
	MinQuestions     int `mapstructure:"min_questions"`
	MaxQuestions     int `mapstructure:"max_questions"`
	DefaultQuestions int `mapstructure:"default_questions"`
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit", 1.0)
	v.SetDefault("server.burst", 5)

	v.SetDefault("database.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.retry_attempts", llmDefaults.Retry.MaxAttempts)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.openrouter.site_url", "")

	v.SetDefault("assessment.policy", assessment.PolicyPooled)
	v.SetDefault("assessment.total", 18)
	v.SetDefault("assessment.per_level_quota", 3)
	v.SetDefault("assessment.pass_threshold", assessment.DefaultPassThreshold)
	v.SetDefault("assessment.pool_questions", 10)

	v.SetDefault("quiz.min_questions", 10)
	v.SetDefault("quiz.max_questions", 20)
	v.SetDefault("quiz.default_questions", 10)
}

// Load reads configuration. path may name a config file or a directory to
// search for levelup.yaml; an empty path searches the working directory.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LEVELUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		v.SetConfigFile(path)
	case path != "":
		v.AddConfigPath(path)
		v.SetConfigName("levelup")
		v.SetConfigType("yaml")
	default:
		v.AddConfigPath(".")
		v.SetConfigName("levelup")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the non-LLM settings. Provider keys are checked by
// llm.Config.Validate when the provider is built.
func (c *Config) Validate() error {
	switch c.Assessment.Policy {
	case assessment.PolicyFixedTotal, assessment.PolicyPooled:
	default:
		return fmt.Errorf("unknown assessment policy %q", c.Assessment.Policy)
	}
	if c.Assessment.Total < 1 {
		return fmt.Errorf("assessment total must be positive, got %d", c.Assessment.Total)
	}
	if c.Assessment.PerLevelQuota < 1 {
		return fmt.Errorf("assessment per-level quota must be positive, got %d", c.Assessment.PerLevelQuota)
	}
	if c.Assessment.PassThreshold < 1 || c.Assessment.PassThreshold > 100 {
		return fmt.Errorf("assessment pass threshold must be within 1..100, got %d", c.Assessment.PassThreshold)
	}
	if c.Quiz.MinQuestions < 1 || c.Quiz.MaxQuestions < c.Quiz.MinQuestions {
		return fmt.Errorf("invalid quiz question bounds [%d, %d]", c.Quiz.MinQuestions, c.Quiz.MaxQuestions)
	}
	if c.Quiz.DefaultQuestions < c.Quiz.MinQuestions || c.Quiz.DefaultQuestions > c.Quiz.MaxQuestions {
		return fmt.Errorf("default quiz question count %d outside [%d, %d]",
			c.Quiz.DefaultQuestions, c.Quiz.MinQuestions, c.Quiz.MaxQuestions)
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return fmt.Errorf("rate limit and burst must not be negative")
	}
	return nil
}

// LLMProviderConfig converts the llm section into an llm.Config. When no provider is
// configured, vendor API key variables are probed via llm.DiscoverConfig;
// ok is false when nothing is available.
func (c *Config) LLMProviderConfig() (cfg llm.Config, ok bool) {
	if c.LLM.Provider == "" {
		discovered, found := llm.DiscoverConfig()
		if !found {
			return llm.Config{}, false
		}
		cfg = discovered
	} else {
		cfg = llm.DefaultConfig()
		cfg.Provider = c.LLM.Provider
		cfg.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Model: c.LLM.Anthropic.Model, BaseURL: c.LLM.Anthropic.BaseURL}
		cfg.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Model: c.LLM.OpenAI.Model, BaseURL: c.LLM.OpenAI.BaseURL}
		cfg.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Model: c.LLM.Gemini.Model}
		cfg.OpenRouter = llm.OpenRouterConfig{
			APIKey:  c.LLM.OpenRouter.APIKey,
			Model:   c.LLM.OpenRouter.Model,
			BaseURL: c.LLM.OpenRouter.BaseURL,
			SiteURL: c.LLM.OpenRouter.SiteURL,
		}
	}
	cfg.Timeout = c.LLM.Timeout
	cfg.Retry.MaxAttempts = c.LLM.RetryAttempts
	return cfg, true
}

// ComposerConfig returns the assessment composition settings.
func (c *Config) ComposerConfig() assessment.ComposerConfig {
	return assessment.ComposerConfig{
		Policy:        c.Assessment.Policy,
		Total:         c.Assessment.Total,
		PerLevelQuota: c.Assessment.PerLevelQuota,
	}
}
