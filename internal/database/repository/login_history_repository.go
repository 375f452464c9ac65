package repository

import (
	"context"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoginHistoryRepository keeps the latest login of each user
type LoginHistoryRepository struct {
	db *gorm.DB
}

// NewLoginHistoryRepository creates a new LoginHistoryRepository instance
func NewLoginHistoryRepository(db *gorm.DB) *LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

// Upsert replaces the user's login row and resets its call counter
func (r *LoginHistoryRepository) Upsert(ctx context.Context, userID string, meta models.LoginMetadata, at time.Time) error {
	entry := &models.LoginHistory{
		UserID:        userID,
		LoginTime:     at,
		IPAddress:     meta.IPAddress,
		MACAddress:    meta.MACAddress,
		UserAgent:     meta.UserAgent,
		APICallsCount: 0,
		UpdatedAt:     at,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"login_time", "ip_address", "mac_address", "user_agent", "api_calls_count", "updated_at",
		}),
	}).Create(entry).Error
}

// IncrementAPICalls counts one generation call against the user's session
func (r *LoginHistoryRepository) IncrementAPICalls(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.LoginHistory{}).
		Where("user_id = ?", userID).
		UpdateColumn("api_calls_count", gorm.Expr("api_calls_count + 1")).Error
}

// List returns every login row joined with its user, latest login first
func (r *LoginHistoryRepository) List(ctx context.Context) ([]models.LoginHistoryEntry, error) {
	var entries []models.LoginHistoryEntry
	err := r.db.WithContext(ctx).
		Table("login_history AS lh").
		Select("lh.user_id, lh.login_time, lh.api_calls_count, lh.ip_address, lh.mac_address, lh.user_agent, " +
			"u.email, u.full_name, u.role, u.department, u.position").
		Joins("JOIN users u ON lh.user_id = u.id").
		Order("lh.login_time DESC").
		Scan(&entries).Error
	return entries, err
}
