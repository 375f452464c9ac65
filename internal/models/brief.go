package models

import (
	"time"

	"gorm.io/gorm"
)

// Brief is a generated content brief persisted by its owner
type Brief struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	IdeaID    *string   `json:"idea_id" gorm:"type:uuid;index"`
	Persona   string    `json:"persona" gorm:"type:varchar(255);not null"`
	Industry  string    `json:"industry" gorm:"type:varchar(255);not null"`
	Idea      string    `json:"idea" gorm:"type:text;not null"`
	Brief     string    `json:"brief" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Brief model
func (Brief) TableName() string {
	return "briefs"
}

func (b *Brief) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// GenerateBriefRequest asks for a brief developing one idea
type GenerateBriefRequest struct {
	Persona  string `json:"persona" example:"Marketing Manager"`
	Industry string `json:"industry" example:"E-commerce"`
	Idea     string `json:"idea" example:"10 ways to reduce cart abandonment"`
}

// GenerateBriefResponse is returned by the brief generation endpoint
type GenerateBriefResponse struct {
	Brief      string          `json:"brief"`
	Persona    string          `json:"persona"`
	Industry   string          `json:"industry"`
	Idea       string          `json:"idea"`
	APIKeyUsed CredentialUsage `json:"apiKeyUsed"`
}

// SaveBriefRequest stores a generated brief, optionally linked to a saved idea
type SaveBriefRequest struct {
	Persona  string  `json:"persona"`
	Industry string  `json:"industry"`
	Idea     string  `json:"idea"`
	Brief    string  `json:"brief"`
	IdeaID   *string `json:"ideaId,omitempty"`
}
