package repository

import (
	"context"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"gorm.io/gorm"
)

// BriefRepository handles database operations for saved briefs
type BriefRepository struct {
	db *gorm.DB
}

// NewBriefRepository creates a new BriefRepository instance
func NewBriefRepository(db *gorm.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

// CreateAndMarkIdea saves a brief and, when it references an idea, flags that
// idea as used. Both writes share one transaction.
func (r *BriefRepository) CreateAndMarkIdea(ctx context.Context, brief *models.Brief) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(brief).Error; err != nil {
			return err
		}
		if brief.IdeaID == nil || *brief.IdeaID == "" {
			return nil
		}
		return tx.Model(&models.Idea{}).
			Where("id = ? AND user_id = ?", *brief.IdeaID, brief.UserID).
			Update("is_used", true).Error
	})
}

// ListByUser returns the user's briefs, newest first
func (r *BriefRepository) ListByUser(ctx context.Context, userID string) ([]models.Brief, error) {
	var briefs []models.Brief
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&briefs).Error
	return briefs, err
}
