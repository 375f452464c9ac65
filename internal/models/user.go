package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleClerk      = "clerk"
	RoleController = "controller"
)

// Presence and account states
const (
	UserOnline      = "online"
	UserOffline     = "offline"
	AccountActive   = "active"
	AccountInactive = "inactive"
)

// User represents a user in the system
type User struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Email         string     `json:"email" gorm:"type:varchar(255);not null;unique;index"`
	PasswordHash  string     `json:"-" gorm:"type:varchar(255);not null"`
	Role          string     `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	FullName      string     `json:"full_name" gorm:"type:varchar(255)"`
	Department    string     `json:"department" gorm:"type:varchar(255)"`
	Position      string     `json:"position" gorm:"type:varchar(255)"`
	IPAddress     string     `json:"ip_address" gorm:"type:varchar(45)"`
	MACAddress    string     `json:"mac_address" gorm:"type:varchar(64)"`
	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:'offline'"`
	AccountStatus string     `json:"account_status" gorm:"type:varchar(20);not null;default:'active';index"`
	CheckIPMAC    bool       `json:"check_ip_mac" gorm:"not null;default:false"`
	TokenVersion  uint       `json:"token_version" gorm:"default:0"`
	LastLoginAt   *time.Time `json:"last_login_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateUserRequest is the admin partial update of a user
type UpdateUserRequest struct {
	Role          *string `json:"role,omitempty" example:"clerk"`
	FullName      *string `json:"full_name,omitempty"`
	Department    *string `json:"department,omitempty"`
	Position      *string `json:"position,omitempty"`
	AccountStatus *string `json:"account_status,omitempty" example:"active"`
	IPAddress     *string `json:"ip_address,omitempty"`
	MACAddress    *string `json:"mac_address,omitempty"`
	CheckIPMAC    *bool   `json:"check_ip_mac,omitempty"`
}
