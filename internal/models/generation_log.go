package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generation capabilities
const (
	CapabilityIdeas = "ideas"
	CapabilityBrief = "brief"
)

// Generation stages
const (
	StageStarted   = "started"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// Log statuses
const (
	LogInfo    = "info"
	LogSuccess = "success"
	LogError   = "error"
)

// GenerationLog represents one step of a generation request (started, completed, failed)
type GenerationLog struct {
	ID string `json:"id" gorm:"primaryKey;type:uuid"`

	UserID     string `json:"user_id" gorm:"type:uuid;not null;index"`
	Capability string `json:"capability" gorm:"type:varchar(20);not null;index" example:"ideas"`

	// Credential used, empty when none was selected
	CredentialID string `json:"credential_id,omitempty" gorm:"type:varchar(36);index"`
	Provider     string `json:"provider,omitempty" gorm:"type:varchar(50)" example:"gemini"`

	Stage   string `json:"stage" gorm:"type:varchar(20);not null;index" example:"completed"`
	Status  string `json:"status" gorm:"type:varchar(20);not null" example:"success"`
	Message string `json:"message" gorm:"type:text;not null" example:"Generated 10 ideas"`

	Metadata datatypes.JSONMap `json:"metadata,omitempty"` // {persona, industry, error_kind, usage_count, ...}

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name for the GenerationLog model
func (GenerationLog) TableName() string {
	return "generation_logs"
}

func (l *GenerationLog) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
