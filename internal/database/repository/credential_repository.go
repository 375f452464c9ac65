package repository

import (
	"context"
	"errors"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"gorm.io/gorm"
)

// CredentialRepository handles database operations for stored provider keys
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new CredentialRepository instance
func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create adds a new credential
func (r *CredentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	return r.db.WithContext(ctx).Create(credential).Error
}

// GetByIDAndUser retrieves a credential owned by the user
func (r *CredentialRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Credential, error) {
	var credential models.Credential
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil when not found
		}
		return nil, err
	}
	return &credential, nil
}

// ListByUser retrieves every credential of a user, newest first
func (r *CredentialRepository) ListByUser(ctx context.Context, userID string) ([]models.Credential, error) {
	var credentials []models.Credential
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&credentials).Error
	return credentials, err
}

// UpdateByIDAndUser applies a field -> value map to a credential owned by the user
func (r *CredentialRepository) UpdateByIDAndUser(ctx context.Context, id, userID string, updates map[string]interface{}) (*models.Credential, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Credential{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByIDAndUser(ctx, id, userID)
}

// DeleteByIDAndUser removes a credential owned by the user
func (r *CredentialRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Credential{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListEligible returns the user's active credentials for the given providers
// whose connection status is not failed. NULL status counts as untested.
func (r *CredentialRepository) ListEligible(ctx context.Context, userID string, providers []string) ([]models.Credential, error) {
	var credentials []models.Credential
	if len(providers) == 0 {
		return credentials, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("provider IN ?", providers).
		Where("(connection_status IS NULL OR connection_status <> ?)", models.ConnectionFailed).
		Order("id ASC").
		Find(&credentials).Error
	return credentials, err
}

// IncrementUsage adds one to the usage counter and stamps last_used_at in a
// single-row update, then returns the stored counter.
func (r *CredentialRepository) IncrementUsage(ctx context.Context, id string, at time.Time) (int64, error) {
	err := r.db.WithContext(ctx).
		Model(&models.Credential{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": at,
		}).Error
	if err != nil {
		return 0, err
	}

	return r.GetUsageCount(ctx, id)
}

// GetUsageCount reads the stored usage counter of a credential
func (r *CredentialRepository) GetUsageCount(ctx context.Context, id string) (int64, error) {
	var counts []int64
	if err := r.db.WithContext(ctx).Model(&models.Credential{}).Where("id = ?", id).Pluck("usage_count", &counts).Error; err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return counts[0], nil
}

// SetConnectionStatus records the outcome of a connection probe
func (r *CredentialRepository) SetConnectionStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Credential{}).
		Where("id = ?", id).
		UpdateColumn("connection_status", status).Error
}

// ListUntested returns active credentials of the given providers that were never probed
func (r *CredentialRepository) ListUntested(ctx context.Context, providers []string, limit int) ([]models.Credential, error) {
	var credentials []models.Credential
	if len(providers) == 0 {
		return credentials, nil
	}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("provider IN ?", providers).
		Where("(connection_status IS NULL OR connection_status = ?)", models.ConnectionUntested).
		Order("created_at ASC").
		Limit(limit).
		Find(&credentials).Error
	return credentials, err
}
