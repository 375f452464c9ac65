package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

var validRoles = []string{models.RoleUser, models.RoleAdmin, models.RoleClerk, models.RoleController}

type UserService struct {
	userRepo         *repository.UserRepository
	loginHistoryRepo *repository.LoginHistoryRepository
}

func NewUserService(userRepo *repository.UserRepository, loginHistoryRepo *repository.LoginHistoryRepository) *UserService {
	return &UserService{userRepo: userRepo, loginHistoryRepo: loginHistoryRepo}
}

// GetAllUsers returns a page of users
func (s *UserService) GetAllUsers(ctx context.Context, page, pageSize int, search string) ([]models.User, utils.PaginationResponse, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)
	users, total, err := s.userRepo.GetAllUsers(ctx, page, pageSize, strings.TrimSpace(search))
	if err != nil {
		return nil, utils.PaginationResponse{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, utils.CalculatePaginationInfo(total, page, pageSize), nil
}

// GetUser returns one user
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUser applies an admin partial update
func (s *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	updates, err := BuildUserUpdates(req)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateFields(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User")
	}
	return user, nil
}

// DeleteUser removes a user other than the caller
func (s *UserService) DeleteUser(ctx context.Context, id, currentUserID string) error {
	if id == currentUserID {
		return utils.NewValidationError("Cannot delete your own account")
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError("User")
	}
	return nil
}

// GetLoginHistory returns the latest login of every user
func (s *UserService) GetLoginHistory(ctx context.Context) ([]models.LoginHistoryEntry, error) {
	entries, err := s.loginHistoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get login history: %w", err)
	}
	return entries, nil
}

// BuildUserUpdates turns an admin update request into a column map
func BuildUserUpdates(req *models.UpdateUserRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !contains(validRoles, role) {
			return nil, utils.NewValidationError("Invalid role. Must be one of: " + strings.Join(validRoles, ", "))
		}
		updates["role"] = role
	}
	if req.AccountStatus != nil {
		status := strings.ToLower(strings.TrimSpace(*req.AccountStatus))
		if status != models.AccountActive && status != models.AccountInactive {
			return nil, utils.NewValidationError("Invalid account status. Must be active or inactive")
		}
		updates["account_status"] = status
	}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Department != nil {
		updates["department"] = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		updates["position"] = strings.TrimSpace(*req.Position)
	}
	if req.IPAddress != nil {
		updates["ip_address"] = strings.TrimSpace(*req.IPAddress)
	}
	if req.MACAddress != nil {
		updates["mac_address"] = strings.TrimSpace(*req.MACAddress)
	}
	if req.CheckIPMAC != nil {
		updates["check_ip_mac"] = *req.CheckIPMAC
	}

	if len(updates) == 0 {
		return nil, utils.NewValidationError("No fields to update")
	}
	return updates, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
