package repository

import (
	"context"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"gorm.io/gorm"
)

type GenerationLogRepository struct {
	db *gorm.DB
}

func NewGenerationLogRepository(db *gorm.DB) *GenerationLogRepository {
	return &GenerationLogRepository{db: db}
}

// Create stores a log entry
func (r *GenerationLogRepository) Create(ctx context.Context, log *models.GenerationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByUserID retrieves logs for a specific user, newest first
func (r *GenerationLogRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.GenerationLog, int64, error) {
	var logs []models.GenerationLog
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.GenerationLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

// DeleteOlderThan deletes logs created before the cutoff
func (r *GenerationLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.GenerationLog{})
	return result.RowsAffected, result.Error
}
