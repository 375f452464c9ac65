package config

import (
	"fmt"
	"strings"
)

// Wire protocols spoken by the supported providers
const (
	ProtocolOpenAI = "openai"
	ProtocolGemini = "gemini"
)

// ProviderRoute describes where and how a provider is called
type ProviderRoute struct {
	Provider string            `json:"provider"`
	Protocol string            `json:"protocol"`
	URL      string            `json:"url"`
	Model    string            `json:"model"`
	Headers  map[string]string `json:"headers,omitempty"`
	// NameAsModel uses the credential display name as the model id when present
	NameAsModel bool `json:"name_as_model"`
}

// ProviderRoutes maps provider tags to their routes
type ProviderRoutes map[string]ProviderRoute

// DefaultProviderRoutes returns the routes of every provider wired to generation
func DefaultProviderRoutes() ProviderRoutes {
	return ProviderRoutes{
		"openrouter": {
			Provider: "openrouter",
			Protocol: ProtocolOpenAI,
			URL:      "https://openrouter.ai/api/v1/chat/completions",
			Model:    "google/gemini-2.0-flash-exp:free",
			Headers: map[string]string{
				"HTTP-Referer": "https://content-multiplier.com",
				"X-Title":      "Content Multiplier",
			},
			NameAsModel: true,
		},
		"gemini": {
			Provider: "gemini",
			Protocol: ProtocolGemini,
			URL:      "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent",
			Model:    "gemini-pro",
		},
		"gpt-oss": {
			Provider: "gpt-oss",
			Protocol: ProtocolOpenAI,
			URL:      "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4",
		},
		"deepseek": {
			Provider: "deepseek",
			Protocol: ProtocolOpenAI,
			URL:      "https://api.deepseek.com/v1/chat/completions",
			Model:    "deepseek-chat",
		},
		"qwen": {
			Provider: "qwen",
			Protocol: ProtocolOpenAI,
			URL:      "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions",
			Model:    "qwen-max",
		},
		"glm": {
			Provider: "glm",
			Protocol: ProtocolOpenAI,
			URL:      "https://open.bigmodel.cn/api/paas/v4/chat/completions",
			Model:    "glm-4",
		},
	}
}

// WithBaseURL rewrites every route to the same scheme and host, keeping paths.
// Used to point all providers at a local gateway or a test server.
func (r ProviderRoutes) WithBaseURL(baseURL string) ProviderRoutes {
	baseURL = strings.TrimSuffix(baseURL, "/")
	out := make(ProviderRoutes, len(r))
	for tag, route := range r {
		route.URL = fmt.Sprintf("%s/%s%s", baseURL, tag, pathOf(route.URL))
		out[tag] = route
	}
	return out
}

// Validate checks every route has the fields its protocol needs
func (r ProviderRoutes) Validate() error {
	for tag, route := range r {
		if route.URL == "" {
			return fmt.Errorf("provider %s has no url", tag)
		}
		if route.Protocol != ProtocolOpenAI && route.Protocol != ProtocolGemini {
			return fmt.Errorf("provider %s has unknown protocol %q", tag, route.Protocol)
		}
		if route.Protocol == ProtocolOpenAI && route.Model == "" {
			return fmt.Errorf("provider %s has no model", tag)
		}
	}
	return nil
}

func pathOf(rawURL string) string {
	rest := rawURL
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[i:]
	}
	return ""
}
