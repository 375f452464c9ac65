package repository

import (
	"context"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"gorm.io/gorm"
)

// IdeaRepository handles database operations for saved ideas
type IdeaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new IdeaRepository instance
func NewIdeaRepository(db *gorm.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

// Create saves a new idea
func (r *IdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

// ListByUser returns the user's ideas, newest first
func (r *IdeaRepository) ListByUser(ctx context.Context, userID string) ([]models.Idea, error) {
	var ideas []models.Idea
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ideas).Error
	return ideas, err
}

// DeleteByIDAndUser removes an idea owned by the user
func (r *IdeaRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Idea{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkUsed flags an idea owned by the user as developed into a brief
func (r *IdeaRepository) MarkUsed(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_used", true).Error
}
