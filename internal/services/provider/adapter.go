// Package provider translates a prompt and a stored credential into one call
// against an AI text-generation provider and extracts the generated text.
package provider

import (
	"context"
	"net/http"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

// Options are the sampling parameters of one generation call
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Adapter calls one provider. Implementations make a single attempt.
type Adapter interface {
	Generate(ctx context.Context, prompt string, credential *models.Credential, opts Options) (string, error)
}

// HTTPClient is the subset of *http.Client used by adapters
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
