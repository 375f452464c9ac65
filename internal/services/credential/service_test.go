package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/dbtest"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

func newTestService(t *testing.T) *Service {
	return NewService(repository.NewCredentialRepository(dbtest.Open(t)))
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, "u1", &models.CreateCredentialRequest{Provider: " Gemini ", APIKey: "secret", Name: strPtr("main")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "gemini", created.Provider)
	assert.True(t, created.IsActive)
	assert.Equal(t, int64(0), created.UsageCount)
	assert.Equal(t, models.ConnectionUntested, created.Health())
	assert.Equal(t, "main", created.DisplayName())

	_, err = svc.Create(ctx, "u1", &models.CreateCredentialRequest{Provider: "gemini"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrValidation))
	assert.Equal(t, "Provider and API key are required", err.Error())

	_, err = svc.Create(ctx, "u1", &models.CreateCredentialRequest{Provider: "anthropic", APIKey: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrValidation))
	assert.Contains(t, err.Error(), "Invalid provider. Must be one of: openrouter, gemini")
}

func TestServiceOwnerScoping(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, "owner", &models.CreateCredentialRequest{Provider: "qwen", APIKey: "secret"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID, "intruder")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.Equal(t, "API key not found", err.Error())

	_, err = svc.Update(ctx, created.ID, "intruder", &models.UpdateCredentialRequest{IsActive: new(bool)})
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, created.ID, "intruder"), utils.ErrNotFound))

	list, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID, "owner"))
	list, err = svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	repo := repository.NewCredentialRepository(db)
	svc := NewService(repo)

	created, err := svc.Create(ctx, "u1", &models.CreateCredentialRequest{Provider: "glm", APIKey: "old"})
	require.NoError(t, err)
	require.NoError(t, repo.SetConnectionStatus(ctx, created.ID, models.ConnectionFailed))

	updated, err := svc.Update(ctx, created.ID, "u1", &models.UpdateCredentialRequest{APIKey: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.APIKey)
	assert.Equal(t, "glm", updated.Provider)
	assert.Equal(t, models.ConnectionUntested, updated.Health())

	inactive := false
	updated, err = svc.Update(ctx, created.ID, "u1", &models.UpdateCredentialRequest{IsActive: &inactive, Provider: strPtr("DeepSeek")})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "deepseek", updated.Provider)
	assert.Equal(t, "new", updated.APIKey)

	_, err = svc.Update(ctx, created.ID, "u1", &models.UpdateCredentialRequest{})
	require.Error(t, err)
	assert.Equal(t, "No fields to update", err.Error())
}

func TestBuildCredentialUpdates(t *testing.T) {
	active := true
	tests := []struct {
		name    string
		req     models.UpdateCredentialRequest
		want    map[string]interface{}
		wantErr string
	}{
		{
			name: "only present fields",
			req:  models.UpdateCredentialRequest{IsActive: &active},
			want: map[string]interface{}{"is_active": true},
		},
		{
			name: "provider is normalized",
			req:  models.UpdateCredentialRequest{Provider: strPtr("OpenRouter")},
			want: map[string]interface{}{"provider": "openrouter"},
		},
		{
			name: "new secret resets status",
			req:  models.UpdateCredentialRequest{APIKey: strPtr(" k ")},
			want: map[string]interface{}{"api_key": "k", "connection_status": models.ConnectionUntested},
		},
		{
			name:    "unknown provider",
			req:     models.UpdateCredentialRequest{Provider: strPtr("foo")},
			wantErr: "Invalid provider",
		},
		{
			name:    "blank secret",
			req:     models.UpdateCredentialRequest{APIKey: strPtr("  ")},
			wantErr: "API key cannot be empty",
		},
		{
			name:    "nothing to update",
			wantErr: "No fields to update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCredentialUpdates(&tt.req)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
