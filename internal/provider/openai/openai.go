// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openai implements the completion provider for OpenAI-compatible
// chat-completions APIs.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jacobcy/parsekit/internal/httputil"
	"github.com/jacobcy/parsekit/internal/provider"
	"github.com/jacobcy/parsekit/pkg/types"
)

const (
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o"
)

func init() {
	provider.Register(types.ProviderOpenAI, func(cfg types.ProviderConfig) (provider.Provider, error) {
		return New(cfg)
	})
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	maxTokens   int
	attempts    int
	client      *http.Client
}

// New creates a client from a provider config. A missing API key is a
// configuration error, reported here rather than as an HTTP 401 later.
func New(cfg types.ProviderConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key not configured (set PARSEKIT_PROVIDER_API_KEY or .secrets/openai-api-key)")
	}
	endpoint := apiURL
	if cfg.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	}
	return NewWithEndpoint(cfg, endpoint), nil
}

// NewWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewWithEndpoint(cfg types.ProviderConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		endpoint:    endpoint,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		attempts:    cfg.MaxRetries,
		client:      &http.Client{Timeout: timeout},
	}
}

// Name implements provider.Provider.
func (c *Client) Name() string { return "openai" }

// apiResponse models the chat-completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete implements provider.Provider. Transport errors, 429s, and 5xx
// responses are retried with exponential backoff before giving up.
func (c *Client) Complete(ctx context.Context, messages []provider.Message) (string, error) {
	reqBody := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
	}
	if c.maxTokens > 0 {
		reqBody["max_tokens"] = c.maxTokens
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.attempts)
	if err != nil {
		return "", fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &provider.APIError{Provider: "openai", StatusCode: resp.StatusCode, Body: string(respBody)}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := provider.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return "", provider.NewRateLimitError("openai", apiErr, retryAfter)
		}
		return "", apiErr
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	if parsed.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("output truncated (finish_reason: length): raise max_tokens")
	}

	return parsed.Choices[0].Message.Content, nil
}
