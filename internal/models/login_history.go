package models

import (
	"time"
)

// LoginHistory keeps only the latest login per user
type LoginHistory struct {
	UserID        string    `json:"user_id" gorm:"primaryKey;type:uuid"`
	LoginTime     time.Time `json:"login_time" gorm:"not null;index"`
	IPAddress     string    `json:"ip_address" gorm:"type:varchar(45)"`
	MACAddress    string    `json:"mac_address" gorm:"type:varchar(64)"`
	UserAgent     string    `json:"user_agent" gorm:"type:text"`
	APICallsCount int64     `json:"api_calls_count" gorm:"not null;default:0"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the LoginHistory model
func (LoginHistory) TableName() string {
	return "login_history"
}

// LoginHistoryEntry is a login history row joined with its user
type LoginHistoryEntry struct {
	UserID        string    `json:"user_id"`
	LoginTime     time.Time `json:"login_time"`
	APICallsCount int64     `json:"api_calls_count"`
	IPAddress     string    `json:"ip_address"`
	MACAddress    string    `json:"mac_address"`
	UserAgent     string    `json:"user_agent"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Role          string    `json:"role"`
	Department    string    `json:"department"`
	Position      string    `json:"position"`
}
