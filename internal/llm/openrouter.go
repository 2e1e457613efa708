package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL  = "https://openrouter.ai/api/v1"
	defaultOpenRouterAppTitle = "levelup"
)

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible API.
// Model ids are passed through as-is ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	title := cfg.AppTitle
	if title == "" {
		title = defaultOpenRouterAppTitle
	}

	hc := &http.Client{Transport: &attributionTransport{
		base:    http.DefaultTransport,
		title:   title,
		referer: cfg.SiteURL,
	}}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, hc)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport stamps OpenRouter's app attribution headers on every
// request.
type attributionTransport struct {
	base    http.RoundTripper
	title   string
	referer string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", t.title)
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	return t.base.RoundTrip(req)
}
