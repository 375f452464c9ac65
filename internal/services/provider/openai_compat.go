package provider

import (
	"context"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const chatCompletionTemplate = `{"model":"","messages":[{"role":"user","content":""}]}`

// OpenAICompatAdapter speaks the chat-completions protocol with bearer auth.
// It serves openrouter, gpt-oss, deepseek, qwen and glm.
type OpenAICompatAdapter struct {
	route  config.ProviderRoute
	client HTTPClient
}

// NewOpenAICompatAdapter creates an adapter for one chat-completions route
func NewOpenAICompatAdapter(route config.ProviderRoute, client HTTPClient) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{route: route, client: client}
}

// Generate implements Adapter
func (a *OpenAICompatAdapter) Generate(ctx context.Context, prompt string, credential *models.Credential, opts Options) (string, error) {
	model := a.route.Model
	if a.route.NameAsModel {
		if name := credential.DisplayName(); name != "" {
			model = name
		}
	}

	payload := []byte(chatCompletionTemplate)
	payload, _ = sjson.SetBytes(payload, "model", model)
	payload, _ = sjson.SetBytes(payload, "messages.0.content", prompt)
	payload, _ = sjson.SetBytes(payload, "temperature", opts.Temperature)
	payload, _ = sjson.SetBytes(payload, "max_tokens", opts.MaxTokens)

	headers := map[string]string{"Authorization": "Bearer " + credential.APIKey}
	for k, v := range a.route.Headers {
		headers[k] = v
	}

	body, status, err := post(ctx, a.client, a.route.Provider, a.route.URL, headers, payload)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(gjson.GetBytes(body, "choices.0.message.content").String())
	if text == "" {
		return "", emptyGeneration(a.route.Provider, status)
	}
	return text, nil
}
