package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Provider tags accepted for stored credentials
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderGPTOSS     = "gpt-oss"
	ProviderDeepSeek   = "deepseek"
	ProviderQwen       = "qwen"
	ProviderGLM        = "glm"
	ProviderMiniMax    = "minimax"
	ProviderLlama      = "llama"
	ProviderNemotron   = "nemotron"
	ProviderGemma      = "gemma"
)

// Connection health tags written by the credential probe
const (
	ConnectionSuccess  = "success"
	ConnectionUntested = "untested"
	ConnectionFailed   = "failed"
)

// KeyManagementProviders lists every provider a credential may be stored for.
var KeyManagementProviders = []string{
	ProviderOpenRouter,
	ProviderGemini,
	ProviderGPTOSS,
	ProviderDeepSeek,
	ProviderQwen,
	ProviderGLM,
	ProviderMiniMax,
	ProviderLlama,
	ProviderNemotron,
	ProviderGemma,
}

// NormalizeProvider lower-cases a provider tag and reports whether it is known.
func NormalizeProvider(provider string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(provider))
	for _, p := range KeyManagementProviders {
		if p == normalized {
			return normalized, true
		}
	}
	return normalized, false
}

// Credential is a third-party AI provider key owned by one user
type Credential struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID           string     `json:"user_id" gorm:"type:uuid;not null;index"`
	Provider         string     `json:"provider" gorm:"type:varchar(50);not null;index" example:"gemini"`
	APIKey           string     `json:"api_key" gorm:"column:api_key;type:text;not null"`
	Name             *string    `json:"name" gorm:"type:varchar(255)" example:"google/gemini-2.0-flash-exp:free"`
	UsageCount       int64      `json:"usage_count" gorm:"not null;default:0"`
	LastUsedAt       *time.Time `json:"last_used_at"`
	IsActive         bool       `json:"is_active" gorm:"not null;index"`
	ConnectionStatus *string    `json:"connection_status" gorm:"type:varchar(20)" example:"untested"` // "success", "untested", "failed"
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Credential model
func (Credential) TableName() string {
	return "api_keys"
}

func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// DisplayName returns the optional name, or an empty string
func (c *Credential) DisplayName() string {
	if c.Name == nil {
		return ""
	}
	return strings.TrimSpace(*c.Name)
}

// Health returns the connection status, treating NULL as untested
func (c *Credential) Health() string {
	if c.ConnectionStatus == nil || *c.ConnectionStatus == "" {
		return ConnectionUntested
	}
	return *c.ConnectionStatus
}

// CreateCredentialRequest represents the request to store a provider key
type CreateCredentialRequest struct {
	Provider string  `json:"provider" example:"gemini"`
	APIKey   string  `json:"api_key" example:"AIza..."`
	Name     *string `json:"name,omitempty" example:"Marketing key"`
}

// UpdateCredentialRequest represents a partial update; nil fields are left untouched
type UpdateCredentialRequest struct {
	Provider *string `json:"provider,omitempty" example:"deepseek"`
	APIKey   *string `json:"api_key,omitempty"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CredentialUsage is reported back to callers after a generation call
type CredentialUsage struct {
	ID         string `json:"id"`
	Provider   string `json:"provider"`
	UsageCount int64  `json:"usageCount"`
}
