// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobcy/parsekit/internal/httputil"
	"github.com/jacobcy/parsekit/internal/provider"
	"github.com/jacobcy/parsekit/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func completionReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}, "finish_reason": "stop"},
		},
	})
	return string(b)
}

func testMessages() []provider.Message {
	return []provider.Message{
		{Role: provider.RoleSystem, Content: "you are a parser"},
		{Role: provider.RoleUser, Content: "parse this"},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(completionReply(`{"title": "x"}`)))
	}))
	defer srv.Close()

	c := NewWithEndpoint(types.ProviderConfig{APIKey: "sk-test", Model: "gpt-4o", Temperature: 0.2, MaxTokens: 1024}, srv.URL)

	out, err := c.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, `{"title": "x"}`, out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o", gotBody["model"])
	assert.Equal(t, 0.2, gotBody["temperature"])
	assert.Equal(t, float64(1024), gotBody["max_tokens"])

	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(completionReply("{}")))
	}))
	defer srv.Close()

	c := NewWithEndpoint(types.ProviderConfig{APIKey: "k"}, srv.URL)

	out, err := c.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
	assert.Equal(t, 3, calls)
}

func TestCompleteRateLimited(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewWithEndpoint(types.ProviderConfig{APIKey: "k"}, srv.URL)

	_, err := c.Complete(context.Background(), testMessages())
	require.Error(t, err)

	var rle *provider.RateLimitError
	require.True(t, errors.As(err, &rle), "want RateLimitError, got %T: %v", err, err)
	assert.Equal(t, "openai", rle.Provider)
	assert.Equal(t, 7*time.Second, rle.RetryAfter)
	assert.Equal(t, httputil.DefaultAttempts, calls, "429 retries before surfacing")

	var ae *provider.APIError
	assert.True(t, errors.As(err, &ae), "rate limit wraps the API error")
}

func TestCompleteClientErrorIsTerminal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad model"}`))
	}))
	defer srv.Close()

	c := NewWithEndpoint(types.ProviderConfig{APIKey: "k"}, srv.URL)

	_, err := c.Complete(context.Background(), testMessages())
	require.Error(t, err)

	var ae *provider.APIError
	require.True(t, errors.As(err, &ae), "want APIError, got %T: %v", err, err)
	assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
	assert.Contains(t, ae.Body, "bad model")
	assert.Equal(t, 1, calls)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewWithEndpoint(types.ProviderConfig{APIKey: "k"}, srv.URL)

	_, err := c.Complete(context.Background(), testMessages())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestCompleteTruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"content": "{"}, "finish_reason": "length"}]}`))
	}))
	defer srv.Close()

	c := NewWithEndpoint(types.ProviderConfig{APIKey: "k"}, srv.URL)

	_, err := c.Complete(context.Background(), testMessages())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(types.ProviderConfig{Kind: types.ProviderOpenAI})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}

func TestNewBaseURLOverride(t *testing.T) {
	c, err := New(types.ProviderConfig{APIKey: "k", BaseURL: "https://proxy.internal/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.internal/v1/chat/completions", c.endpoint)

	c, err = New(types.ProviderConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, apiURL, c.endpoint)
	assert.Equal(t, defaultModel, c.model)
}

func TestProviderRegistered(t *testing.T) {
	p, err := provider.New(types.ProviderConfig{Kind: types.ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}
