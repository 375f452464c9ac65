package models

import (
	"time"

	"gorm.io/gorm"
)

// Idea statuses
const (
	IdeaPending    = "pending"
	IdeaProcessing = "processing"
	IdeaCompleted  = "completed"
	IdeaFailed     = "failed"
)

// Idea is a generated content idea the user chose to keep
type Idea struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Persona     string    `json:"persona" gorm:"type:varchar(255);not null" example:"Marketing Manager"`
	Industry    string    `json:"industry" gorm:"type:varchar(255);not null" example:"E-commerce"`
	Idea        string    `json:"idea" gorm:"type:text;not null"`
	Title       string    `json:"title" gorm:"type:varchar(500)"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	IsUsed      bool      `json:"is_used" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Idea model
func (Idea) TableName() string {
	return "ideas"
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// GenerateIdeasRequest asks for ten ideas for a persona and industry
type GenerateIdeasRequest struct {
	Persona  string `json:"persona" example:"Marketing Manager"`
	Industry string `json:"industry" example:"E-commerce"`
}

// GenerateIdeasResponse is returned by the idea generation endpoint
type GenerateIdeasResponse struct {
	Ideas      []string        `json:"ideas"`
	Persona    string          `json:"persona"`
	Industry   string          `json:"industry"`
	APIKeyUsed CredentialUsage `json:"apiKeyUsed"`
}

// SaveIdeaRequest stores one generated idea
type SaveIdeaRequest struct {
	Persona  string `json:"persona" example:"Marketing Manager"`
	Industry string `json:"industry" example:"E-commerce"`
	Idea     string `json:"idea" example:"10 ways to reduce cart abandonment"`
}
