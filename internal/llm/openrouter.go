package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// API and tags every request with the app attribution headers.
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

	client := &http.Client{Transport: &attributionTransport{
		base:    http.DefaultTransport,
		appName: cfg.AppName,
		siteURL: cfg.SiteURL,
	}}
	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, client)
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport sets OpenRouter's X-Title and HTTP-Referer headers.
type attributionTransport struct {
	base    http.RoundTripper
	appName string
	siteURL string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.appName == "" && t.siteURL == "" {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	if t.appName != "" {
		req.Header.Set("X-Title", t.appName)
	}
	if t.siteURL != "" {
		req.Header.Set("HTTP-Referer", t.siteURL)
	}
	return t.base.RoundTrip(req)
}
