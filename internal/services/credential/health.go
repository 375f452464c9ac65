package credential

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
	"github.com/sirupsen/logrus"
)

const probePrompt = "Reply with OK."

// Dispatcher sends one prompt to the provider of a credential
type Dispatcher interface {
	Generate(ctx context.Context, prompt string, credential *models.Credential, opts provider.Options) (string, error)
}

// StatusStore persists probe outcomes
type StatusStore interface {
	SetConnectionStatus(ctx context.Context, id, status string) error
	ListUntested(ctx context.Context, providers []string, limit int) ([]models.Credential, error)
}

// HealthChecker probes stored keys against their provider
type HealthChecker struct {
	store      StatusStore
	dispatcher Dispatcher
	// providers limits background probing to keys the dispatcher can serve
	providers []string
}

// NewHealthChecker creates a new HealthChecker
func NewHealthChecker(store StatusStore, dispatcher Dispatcher, providers []string) *HealthChecker {
	return &HealthChecker{store: store, dispatcher: dispatcher, providers: providers}
}

// Check sends a minimal prompt with the credential and records the outcome.
// An answer (even an empty one) marks it success, an auth or request rejection
// marks it failed. Network errors, rate limits and provider 5xx leave the
// stored status unchanged and are returned to the caller.
func (h *HealthChecker) Check(ctx context.Context, credential *models.Credential) (string, error) {
	_, err := h.dispatcher.Generate(ctx, probePrompt, credential, provider.Options{Temperature: 0, MaxTokens: 5})

	status, probeErr := classifyProbe(err)
	if status == "" {
		return credential.Health(), probeErr
	}

	if err := h.store.SetConnectionStatus(ctx, credential.ID, status); err != nil {
		return credential.Health(), fmt.Errorf("failed to save connection status: %w", err)
	}
	credential.ConnectionStatus = &status

	logrus.WithFields(logrus.Fields{
		"credential_id": credential.ID,
		"provider":      credential.Provider,
		"status":        status,
	}).Info("API key connection probed")

	return status, probeErr
}

// RunUntested probes up to limit never-tested credentials of the probed providers
func (h *HealthChecker) RunUntested(ctx context.Context, limit int) {
	credentials, err := h.store.ListUntested(ctx, h.providers, limit)
	if err != nil {
		logrus.Errorf("Failed to load untested API keys: %v", err)
		return
	}
	if len(credentials) == 0 {
		return
	}

	var wg sync.WaitGroup
	for i := range credentials {
		wg.Add(1)
		go func(c *models.Credential) {
			defer wg.Done()
			if _, err := h.Check(ctx, c); err != nil {
				logrus.Warnf("Connection probe for API key %s inconclusive: %v", c.ID, err)
			}
		}(&credentials[i])
	}
	wg.Wait()
	logrus.Infof("Probed %d untested API keys", len(credentials))
}

// classifyProbe maps a probe error to the status to store. An empty status
// means nothing should be written.
func classifyProbe(err error) (string, error) {
	if err == nil || errors.Is(err, provider.ErrEmptyGeneration) {
		return models.ConnectionSuccess, nil
	}

	var upstream *provider.UpstreamError
	if errors.As(err, &upstream) && errors.Is(err, provider.ErrProviderRejected) {
		code := upstream.StatusCode
		if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
			return models.ConnectionFailed, nil
		}
	}
	return "", err
}
