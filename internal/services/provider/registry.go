package provider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Registry maps provider tags to adapters
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds an adapter per route. A nil client gets an *http.Client
// with the given timeout.
func NewRegistry(routes config.ProviderRoutes, client HTTPClient, timeout time.Duration) (*Registry, error) {
	if err := routes.Validate(); err != nil {
		return nil, fmt.Errorf("invalid provider routes: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	r := &Registry{adapters: make(map[string]Adapter, len(routes))}
	for tag, route := range routes {
		switch route.Protocol {
		case config.ProtocolGemini:
			r.Register(tag, NewGeminiAdapter(route, client))
		default:
			r.Register(tag, NewOpenAICompatAdapter(route, client))
		}
	}
	logrus.Infof("Provider registry ready: %v", r.Providers())
	return r, nil
}

// Register adds or replaces the adapter for a tag
func (r *Registry) Register(tag string, adapter Adapter) {
	r.adapters[tag] = adapter
}

// Providers returns the registered tags in sorted order
func (r *Registry) Providers() []string {
	tags := make([]string, 0, len(r.adapters))
	for tag := range r.adapters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Generate dispatches to the adapter of the credential's provider
func (r *Registry) Generate(ctx context.Context, prompt string, credential *models.Credential, opts Options) (string, error) {
	adapter, ok := r.adapters[credential.Provider]
	if !ok {
		return "", &UpstreamError{Kind: ErrUnsupportedProvider, Provider: credential.Provider}
	}
	return adapter.Generate(ctx, prompt, credential, opts)
}
