package repository

import (
	"context"
	"errors"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a new refresh token
func (r *RefreshTokenRepository) Create(ctx context.Context, refreshToken *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(refreshToken).Error
}

// GetActive retrieves a non-revoked refresh token, nil when missing
func (r *RefreshTokenRepository) GetActive(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ? AND is_revoked = ?", token, false).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refreshToken, nil
}

// Revoke revokes a specific refresh token
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).Where("token = ?", token).Update("is_revoked", true).Error
}

// RevokeAllForUser revokes every refresh token of a user
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).Where("user_id = ?", userID).Update("is_revoked", true).Error
}

// Cleanup deletes expired and revoked tokens, returning how many were removed
func (r *RefreshTokenRepository) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired := tx.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
		if expired.Error != nil {
			return expired.Error
		}
		revoked := tx.Where("is_revoked = ?", true).Delete(&models.RefreshToken{})
		if revoked.Error != nil {
			return revoked.Error
		}
		removed = expired.RowsAffected + revoked.RowsAffected
		return nil
	})
	return removed, err
}
