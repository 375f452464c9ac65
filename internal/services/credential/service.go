package credential

import (
	"context"
	"fmt"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

// Service handles stored provider key operations
type Service struct {
	repo *repository.CredentialRepository
}

// NewService creates a new credential service
func NewService(repo *repository.CredentialRepository) *Service {
	return &Service{repo: repo}
}

// Create stores a new provider key for a user
func (s *Service) Create(ctx context.Context, userID string, req *models.CreateCredentialRequest) (*models.Credential, error) {
	if strings.TrimSpace(req.Provider) == "" || strings.TrimSpace(req.APIKey) == "" {
		return nil, utils.NewValidationError("Provider and API key are required")
	}

	provider, ok := models.NormalizeProvider(req.Provider)
	if !ok {
		return nil, invalidProvider()
	}

	status := models.ConnectionUntested
	credential := &models.Credential{
		UserID:           userID,
		Provider:         provider,
		APIKey:           strings.TrimSpace(req.APIKey),
		Name:             trimmedOrNil(req.Name),
		UsageCount:       0,
		IsActive:         true,
		ConnectionStatus: &status,
	}

	if err := s.repo.Create(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", err)
	}
	return credential, nil
}

// List returns all provider keys of a user
func (s *Service) List(ctx context.Context, userID string) ([]models.Credential, error) {
	credentials, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list API keys: %w", err)
	}
	return credentials, nil
}

// Get returns one provider key owned by the user
func (s *Service) Get(ctx context.Context, id, userID string) (*models.Credential, error) {
	credential, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}
	if credential == nil {
		return nil, utils.NewNotFoundError("API key")
	}
	return credential, nil
}

// Update applies the fields present in req. A new secret resets the
// connection status to untested.
func (s *Service) Update(ctx context.Context, id, userID string, req *models.UpdateCredentialRequest) (*models.Credential, error) {
	updates, err := BuildCredentialUpdates(req)
	if err != nil {
		return nil, err
	}

	credential, err := s.repo.UpdateByIDAndUser(ctx, id, userID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update API key: %w", err)
	}
	if credential == nil {
		return nil, utils.NewNotFoundError("API key")
	}
	return credential, nil
}

// Delete removes a provider key owned by the user
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.repo.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError("API key")
	}
	return nil
}

// BuildCredentialUpdates turns a partial update request into a column map
func BuildCredentialUpdates(req *models.UpdateCredentialRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Provider != nil {
		provider, ok := models.NormalizeProvider(*req.Provider)
		if !ok {
			return nil, invalidProvider()
		}
		updates["provider"] = provider
	}
	if req.APIKey != nil {
		key := strings.TrimSpace(*req.APIKey)
		if key == "" {
			return nil, utils.NewValidationError("API key cannot be empty")
		}
		updates["api_key"] = key
		updates["connection_status"] = models.ConnectionUntested
	}
	if req.Name != nil {
		updates["name"] = trimmedOrNil(req.Name)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, utils.NewValidationError("No fields to update")
	}
	return updates, nil
}

func invalidProvider() error {
	return utils.NewValidationError("Invalid provider. Must be one of: " + strings.Join(models.KeyManagementProviders, ", "))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
