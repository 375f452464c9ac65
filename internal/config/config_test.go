package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProviderRoutes(t *testing.T) {
	routes := DefaultProviderRoutes()
	require.NoError(t, routes.Validate())

	for _, tag := range []string{"openrouter", "gemini", "gpt-oss", "deepseek", "qwen", "glm"} {
		_, ok := routes[tag]
		assert.True(t, ok, "missing route for %s", tag)
	}

	assert.Equal(t, "gpt-4", routes["gpt-oss"].Model)
	assert.Equal(t, "deepseek-chat", routes["deepseek"].Model)
	assert.Equal(t, "qwen-max", routes["qwen"].Model)
	assert.Equal(t, "glm-4", routes["glm"].Model)
	assert.True(t, routes["openrouter"].NameAsModel)
	assert.Equal(t, "Content Multiplier", routes["openrouter"].Headers["X-Title"])
}

func TestWithBaseURL(t *testing.T) {
	routes := DefaultProviderRoutes().WithBaseURL("http://127.0.0.1:9999/")

	assert.Equal(t, "http://127.0.0.1:9999/glm/api/paas/v4/chat/completions", routes["glm"].URL)
	assert.Equal(t, "http://127.0.0.1:9999/gemini/v1beta/models/gemini-pro:generateContent", routes["gemini"].URL)
	// original map untouched
	assert.Equal(t, "https://open.bigmodel.cn/api/paas/v4/chat/completions", DefaultProviderRoutes()["glm"].URL)
}

func TestValidateRejectsBrokenRoutes(t *testing.T) {
	routes := ProviderRoutes{"x": {Provider: "x", Protocol: "smtp", URL: "http://x"}}
	assert.Error(t, routes.Validate())

	routes = ProviderRoutes{"x": {Provider: "x", Protocol: ProtocolOpenAI, URL: "http://x"}}
	assert.Error(t, routes.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://frontend:3000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "content")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://frontend:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.Database.Complete())
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}
