package credential

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/dbtest"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

func strPtr(s string) *string { return &s }

type candidate struct {
	Status string
	Usage  int64
}

func buildCandidates(specs []candidate) []models.Credential {
	out := make([]models.Credential, len(specs))
	for i, s := range specs {
		c := models.Credential{ID: fmt.Sprintf("cred-%03d", i), Provider: models.ProviderGemini, UsageCount: s.Usage, IsActive: true}
		if s.Status != "null" {
			c.ConnectionStatus = strPtr(s.Status)
		}
		out[i] = c
	}
	return out
}

func better(a, b *models.Credential) bool {
	if healthRank(a) != healthRank(b) {
		return healthRank(a) < healthRank(b)
	}
	if a.UsageCount != b.UsageCount {
		return a.UsageCount < b.UsageCount
	}
	return a.ID < b.ID
}

func TestRankProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	candidatesGen := gen.SliceOf(gen.Struct(reflect.TypeOf(candidate{}), map[string]gopter.Gen{
		"Status": gen.OneConstOf("success", "untested", "null", "timeout"),
		"Usage":  gen.Int64Range(0, 5),
	}))

	properties.Property("no candidate outranks the chosen one", prop.ForAll(
		func(specs []candidate) bool {
			creds := buildCandidates(specs)
			chosen := Rank(creds)
			if len(creds) == 0 {
				return chosen == nil
			}
			for i := range creds {
				if better(&creds[i], chosen) {
					return false
				}
			}
			return true
		},
		candidatesGen,
	))

	properties.Property("choice does not depend on input order", prop.ForAll(
		func(specs []candidate) bool {
			creds := buildCandidates(specs)
			if len(creds) == 0 {
				return true
			}
			reversed := make([]models.Credential, len(creds))
			for i := range creds {
				reversed[len(creds)-1-i] = creds[i]
			}
			return Rank(creds).ID == Rank(reversed).ID
		},
		candidatesGen,
	))

	properties.Property("input is left untouched", prop.ForAll(
		func(specs []candidate) bool {
			creds := buildCandidates(specs)
			before := make([]string, len(creds))
			for i := range creds {
				before[i] = creds[i].ID
			}
			Rank(creds)
			for i := range creds {
				if creds[i].ID != before[i] {
					return false
				}
			}
			return true
		},
		candidatesGen,
	))

	properties.TestingRun(t)
}

func TestRankPrefersHealthyThenLeastUsed(t *testing.T) {
	creds := []models.Credential{
		{ID: "a", UsageCount: 0, ConnectionStatus: strPtr(models.ConnectionUntested)},
		{ID: "b", UsageCount: 9, ConnectionStatus: strPtr(models.ConnectionSuccess)},
		{ID: "c", UsageCount: 3, ConnectionStatus: strPtr(models.ConnectionSuccess)},
		{ID: "d", UsageCount: 0, ConnectionStatus: nil},
	}
	assert.Equal(t, "c", Rank(creds).ID)

	creds = []models.Credential{
		{ID: "b", UsageCount: 1},
		{ID: "a", UsageCount: 1, ConnectionStatus: strPtr(models.ConnectionUntested)},
	}
	assert.Equal(t, "a", Rank(creds).ID)

	assert.Nil(t, Rank(nil))
}

func seedCredential(t *testing.T, repo *repository.CredentialRepository, c models.Credential) models.Credential {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &c))
	return c
}

func TestSelectorSelect(t *testing.T) {
	ctx := context.Background()
	generation := []string{"openrouter", "gemini", "gpt-oss", "deepseek", "qwen", "glm"}

	t.Run("healthy key beats untested key with lower usage", func(t *testing.T) {
		repo := repository.NewCredentialRepository(dbtest.Open(t))
		seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "gemini", APIKey: "k1", IsActive: true, UsageCount: 0, ConnectionStatus: strPtr("untested")})
		good := seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "deepseek", APIKey: "k2", IsActive: true, UsageCount: 7, ConnectionStatus: strPtr("success")})

		chosen, err := NewSelector(repo).Select(ctx, "u1", generation)
		require.NoError(t, err)
		assert.Equal(t, good.ID, chosen.ID)
	})

	t.Run("ineligible keys are never chosen", func(t *testing.T) {
		repo := repository.NewCredentialRepository(dbtest.Open(t))
		seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "gemini", APIKey: "failed", IsActive: true, ConnectionStatus: strPtr("failed")})
		seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "gemini", APIKey: "inactive", IsActive: false, ConnectionStatus: strPtr("success")})
		seedCredential(t, repo, models.Credential{UserID: "u2", Provider: "gemini", APIKey: "foreign", IsActive: true, ConnectionStatus: strPtr("success")})
		seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "minimax", APIKey: "unsupported", IsActive: true, ConnectionStatus: strPtr("success")})
		legacy := seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "qwen", APIKey: "legacy", IsActive: true, UsageCount: 50})

		chosen, err := NewSelector(repo).Select(ctx, "u1", generation)
		require.NoError(t, err)
		assert.Equal(t, legacy.ID, chosen.ID)
		assert.Equal(t, models.ConnectionUntested, chosen.Health())
	})

	t.Run("no eligible key", func(t *testing.T) {
		repo := repository.NewCredentialRepository(dbtest.Open(t))
		seedCredential(t, repo, models.Credential{UserID: "u1", Provider: "gemini", APIKey: "k", IsActive: false})

		chosen, err := NewSelector(repo).Select(ctx, "u1", generation)
		assert.Nil(t, chosen)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoCredential))

		var noCred *NoCredentialError
		require.True(t, errors.As(err, &noCred))
		assert.Equal(t, generation, noCred.Providers)
		assert.Equal(t, "No active API key found. Please add an API key from supported providers: openrouter, gemini, gpt-oss, deepseek, qwen, glm", err.Error())
	})
}
