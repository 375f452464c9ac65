package credential

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/dbtest"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
)

type stubDispatcher struct {
	errs map[string]error
}

var probedProviders = []string{models.ProviderGemini, models.ProviderQwen, models.ProviderGLM}

func (s *stubDispatcher) Generate(ctx context.Context, prompt string, credential *models.Credential, opts provider.Options) (string, error) {
	if err, ok := s.errs[credential.APIKey]; ok {
		return "", err
	}
	return "OK", nil
}

func TestHealthCheckerCheck(t *testing.T) {
	ctx := context.Background()
	netErr := &provider.UpstreamError{Kind: provider.ErrNetwork, Provider: "gemini", Err: errors.New("dial tcp: refused")}

	tests := []struct {
		name       string
		err        error
		wantStatus string
		wantErr    bool
	}{
		{name: "answer", wantStatus: models.ConnectionSuccess},
		{name: "empty answer", err: &provider.UpstreamError{Kind: provider.ErrEmptyGeneration, StatusCode: 200}, wantStatus: models.ConnectionSuccess},
		{name: "unauthorized", err: &provider.UpstreamError{Kind: provider.ErrProviderRejected, StatusCode: 401}, wantStatus: models.ConnectionFailed},
		{name: "rate limited", err: &provider.UpstreamError{Kind: provider.ErrProviderRejected, StatusCode: 429}, wantStatus: models.ConnectionUntested, wantErr: true},
		{name: "provider down", err: &provider.UpstreamError{Kind: provider.ErrProviderRejected, StatusCode: 503}, wantStatus: models.ConnectionUntested, wantErr: true},
		{name: "network", err: netErr, wantStatus: models.ConnectionUntested, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewCredentialRepository(dbtest.Open(t))
			cred := models.Credential{UserID: "u1", Provider: "gemini", APIKey: "secret", IsActive: true, ConnectionStatus: strPtr(models.ConnectionUntested)}
			require.NoError(t, repo.Create(ctx, &cred))

			dispatcher := &stubDispatcher{errs: map[string]error{}}
			if tt.err != nil {
				dispatcher.errs["secret"] = tt.err
			}

			status, err := NewHealthChecker(repo, dispatcher, probedProviders).Check(ctx, &cred)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, status)

			stored, err := repo.GetByIDAndUser(ctx, cred.ID, "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Health())
		})
	}
}

func TestHealthCheckerRunUntested(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCredentialRepository(dbtest.Open(t))

	good := models.Credential{UserID: "u1", Provider: "gemini", APIKey: "good", IsActive: true}
	bad := models.Credential{UserID: "u1", Provider: "qwen", APIKey: "bad", IsActive: true, ConnectionStatus: strPtr(models.ConnectionUntested)}
	tested := models.Credential{UserID: "u1", Provider: "glm", APIKey: "tested", IsActive: true, ConnectionStatus: strPtr(models.ConnectionSuccess)}
	for _, c := range []*models.Credential{&good, &bad, &tested} {
		require.NoError(t, repo.Create(ctx, c))
	}

	dispatcher := &stubDispatcher{errs: map[string]error{
		"bad": &provider.UpstreamError{Kind: provider.ErrProviderRejected, StatusCode: 403},
	}}
	NewHealthChecker(repo, dispatcher, probedProviders).RunUntested(ctx, 10)

	stored, err := repo.GetByIDAndUser(ctx, good.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionSuccess, stored.Health())

	stored, err = repo.GetByIDAndUser(ctx, bad.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionFailed, stored.Health())

	remaining, err := repo.ListUntested(ctx, probedProviders, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestHealthCheckerRunUntestedSkipsUnservedProviders(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCredentialRepository(dbtest.Open(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Credential{UserID: "u1", Provider: models.ProviderMiniMax, APIKey: "mm", IsActive: true}))
	}
	gem := models.Credential{UserID: "u1", Provider: models.ProviderGemini, APIKey: "gem", IsActive: true}
	require.NoError(t, repo.Create(ctx, &gem))

	dispatcher := &stubDispatcher{errs: map[string]error{
		"mm": fmt.Errorf("%w: minimax", provider.ErrUnsupportedProvider),
	}}
	NewHealthChecker(repo, dispatcher, probedProviders).RunUntested(ctx, 3)

	stored, err := repo.GetByIDAndUser(ctx, gem.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionSuccess, stored.Health())

	all, err := repo.ListUntested(ctx, []string{models.ProviderMiniMax}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
