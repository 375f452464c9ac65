package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type capturedRequest struct {
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type fakeUpstream struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     string
}

func (f *fakeUpstream) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, capturedRequest{Path: r.URL.Path, Query: r.URL.RawQuery, Header: r.Header.Clone(), Body: body})
	status, respBody := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(respBody))
}

func (f *fakeUpstream) last(t *testing.T) capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestRegistry(t *testing.T, upstream *fakeUpstream) *Registry {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(upstream.handler))
	t.Cleanup(server.Close)

	registry, err := NewRegistry(config.DefaultProviderRoutes().WithBaseURL(server.URL), server.Client(), 5*time.Second)
	require.NoError(t, err)
	return registry
}

func strPtr(s string) *string { return &s }

const chatOK = `{"choices":[{"message":{"role":"assistant","content":"  generated text  "}}]}`

func TestOpenAICompatibleProviders(t *testing.T) {
	tests := []struct {
		provider string
		path     string
		model    string
	}{
		{"gpt-oss", "/gpt-oss/v1/chat/completions", "gpt-4"},
		{"deepseek", "/deepseek/v1/chat/completions", "deepseek-chat"},
		{"qwen", "/qwen/compatible-mode/v1/chat/completions", "qwen-max"},
		{"glm", "/glm/api/paas/v4/chat/completions", "glm-4"},
		{"openrouter", "/openrouter/api/v1/chat/completions", "google/gemini-2.0-flash-exp:free"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			upstream := &fakeUpstream{status: http.StatusOK, body: chatOK}
			registry := newTestRegistry(t, upstream)

			cred := &models.Credential{ID: "c1", Provider: tt.provider, APIKey: "sk-secret"}
			text, err := registry.Generate(context.Background(), "write ideas", cred, Options{Temperature: 0.8, MaxTokens: 2000})
			require.NoError(t, err)
			assert.Equal(t, "generated text", text)

			req := upstream.last(t)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, "Bearer sk-secret", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			assert.Equal(t, tt.model, gjson.GetBytes(req.Body, "model").String())
			assert.Equal(t, "user", gjson.GetBytes(req.Body, "messages.0.role").String())
			assert.Equal(t, "write ideas", gjson.GetBytes(req.Body, "messages.0.content").String())
			assert.Equal(t, 0.8, gjson.GetBytes(req.Body, "temperature").Float())
			assert.Equal(t, int64(2000), gjson.GetBytes(req.Body, "max_tokens").Int())
		})
	}
}

func TestOpenRouterUsesNameAsModelAndSendsAttribution(t *testing.T) {
	upstream := &fakeUpstream{status: http.StatusOK, body: chatOK}
	registry := newTestRegistry(t, upstream)

	cred := &models.Credential{ID: "c1", Provider: "openrouter", APIKey: "or-key", Name: strPtr("meta-llama/llama-3-8b-instruct")}
	_, err := registry.Generate(context.Background(), "p", cred, Options{Temperature: 0.7, MaxTokens: 2500})
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, "meta-llama/llama-3-8b-instruct", gjson.GetBytes(req.Body, "model").String())
	assert.Equal(t, "https://content-multiplier.com", req.Header.Get("HTTP-Referer"))
	assert.Equal(t, "Content Multiplier", req.Header.Get("X-Title"))
}

func TestNameIsNotAModelForFixedProviders(t *testing.T) {
	upstream := &fakeUpstream{status: http.StatusOK, body: chatOK}
	registry := newTestRegistry(t, upstream)

	cred := &models.Credential{ID: "c1", Provider: "deepseek", APIKey: "k", Name: strPtr("my deepseek key")}
	_, err := registry.Generate(context.Background(), "p", cred, Options{})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", gjson.GetBytes(upstream.last(t).Body, "model").String())
}

func TestGeminiAdapter(t *testing.T) {
	upstream := &fakeUpstream{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"parts":[{"text":"gemini says hi"}]}}]}`,
	}
	registry := newTestRegistry(t, upstream)

	cred := &models.Credential{ID: "g1", Provider: "gemini", APIKey: "AIzaKey"}
	text, err := registry.Generate(context.Background(), "brief please", cred, Options{Temperature: 0.7, MaxTokens: 2500})
	require.NoError(t, err)
	assert.Equal(t, "gemini says hi", text)

	req := upstream.last(t)
	assert.Equal(t, "/gemini/v1beta/models/gemini-pro:generateContent", req.Path)
	assert.Equal(t, "key=AIzaKey", req.Query)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, "brief please", gjson.GetBytes(req.Body, "contents.0.parts.0.text").String())
	assert.Equal(t, 0.7, gjson.GetBytes(req.Body, "generationConfig.temperature").Float())
	assert.Equal(t, int64(2500), gjson.GetBytes(req.Body, "generationConfig.maxOutputTokens").Int())
}

func TestProviderRejectedCarriesPayload(t *testing.T) {
	upstream := &fakeUpstream{status: http.StatusInternalServerError, body: `{"error":{"message":"upstream exploded","code":500}}`}
	registry := newTestRegistry(t, upstream)

	cred := &models.Credential{ID: "c1", Provider: "gpt-oss", APIKey: "k"}
	_, err := registry.Generate(context.Background(), "p", cred, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderRejected))
	assert.False(t, errors.Is(err, ErrNetwork))

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Equal(t, "upstream exploded", upstreamErr.Message)
	assert.Contains(t, upstreamErr.Payload, `"code":500`)
	assert.Equal(t, "gpt-oss", upstreamErr.Provider)
}

func TestPlainTextErrorBody(t *testing.T) {
	upstream := &fakeUpstream{status: http.StatusUnauthorized, body: "invalid api key"}
	registry := newTestRegistry(t, upstream)

	_, err := registry.Generate(context.Background(), "p", &models.Credential{Provider: "qwen", APIKey: "k"}, Options{})
	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "invalid api key", upstreamErr.Message)
}

func TestEmptyGeneration(t *testing.T) {
	tests := []struct {
		provider string
		body     string
	}{
		{"glm", `{"choices":[{"message":{"content":"   "}}]}`},
		{"glm", `{"choices":[]}`},
		{"gemini", `{"candidates":[]}`},
		{"gemini", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"_"+tt.body, func(t *testing.T) {
			upstream := &fakeUpstream{status: http.StatusOK, body: tt.body}
			registry := newTestRegistry(t, upstream)

			_, err := registry.Generate(context.Background(), "p", &models.Credential{Provider: tt.provider, APIKey: "k"}, Options{})
			assert.True(t, errors.Is(err, ErrEmptyGeneration), "got %v", err)
			assert.False(t, errors.Is(err, ErrProviderRejected))
		})
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	routes := config.DefaultProviderRoutes().WithBaseURL(server.URL)
	server.Close()

	registry, err := NewRegistry(routes, nil, time.Second)
	require.NoError(t, err)

	_, err = registry.Generate(context.Background(), "p", &models.Credential{Provider: "deepseek", APIKey: "k"}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, strings.HasPrefix(err.Error(), ErrNetwork.Error()))
}

func TestUnsupportedProvider(t *testing.T) {
	upstream := &fakeUpstream{status: http.StatusOK, body: chatOK}
	registry := newTestRegistry(t, upstream)

	_, err := registry.Generate(context.Background(), "p", &models.Credential{Provider: "minimax", APIKey: "k"}, Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedProvider))

	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	assert.Empty(t, upstream.requests)
}

func TestProvidersAreSorted(t *testing.T) {
	registry, err := NewRegistry(config.DefaultProviderRoutes(), nil, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"deepseek", "gemini", "glm", "gpt-oss", "openrouter", "qwen"}, registry.Providers())
}
