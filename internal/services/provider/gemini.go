package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const generateContentTemplate = `{"contents":[{"parts":[{"text":""}]}],"generationConfig":{}}`

// GeminiAdapter calls the generateContent endpoint with the key as a query parameter
type GeminiAdapter struct {
	route  config.ProviderRoute
	client HTTPClient
}

// NewGeminiAdapter creates an adapter for a generateContent route
func NewGeminiAdapter(route config.ProviderRoute, client HTTPClient) *GeminiAdapter {
	return &GeminiAdapter{route: route, client: client}
}

// Generate implements Adapter
func (a *GeminiAdapter) Generate(ctx context.Context, prompt string, credential *models.Credential, opts Options) (string, error) {
	payload := []byte(generateContentTemplate)
	payload, _ = sjson.SetBytes(payload, "contents.0.parts.0.text", prompt)
	payload, _ = sjson.SetBytes(payload, "generationConfig.temperature", opts.Temperature)
	payload, _ = sjson.SetBytes(payload, "generationConfig.maxOutputTokens", opts.MaxTokens)

	endpoint := a.route.URL + "?key=" + url.QueryEscape(credential.APIKey)

	body, status, err := post(ctx, a.client, a.route.Provider, endpoint, a.route.Headers, payload)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(gjson.GetBytes(body, "candidates.0.content.parts.0.text").String())
	if text == "" {
		return "", emptyGeneration(a.route.Provider, status)
	}
	return text, nil
}
