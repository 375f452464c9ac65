package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

type IdeaService struct {
	ideaRepo *repository.IdeaRepository
}

func NewIdeaService(ideaRepo *repository.IdeaRepository) *IdeaService {
	return &IdeaService{ideaRepo: ideaRepo}
}

// SaveIdea stores one generated idea as pending
func (s *IdeaService) SaveIdea(ctx context.Context, userID string, req *models.SaveIdeaRequest) (*models.Idea, error) {
	if strings.TrimSpace(req.Persona) == "" || strings.TrimSpace(req.Industry) == "" || strings.TrimSpace(req.Idea) == "" {
		return nil, utils.NewValidationError("Persona, industry, and idea are required")
	}

	idea := &models.Idea{
		UserID:      userID,
		Persona:     req.Persona,
		Industry:    req.Industry,
		Idea:        req.Idea,
		Title:       "Idea for " + req.Persona,
		Description: req.Idea,
		Status:      models.IdeaPending,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to save idea: %w", err)
	}
	return idea, nil
}

// ListIdeas returns the user's saved ideas, newest first
func (s *IdeaService) ListIdeas(ctx context.Context, userID string) ([]models.Idea, error) {
	ideas, err := s.ideaRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, nil
}

// DeleteIdea removes one of the user's ideas
func (s *IdeaService) DeleteIdea(ctx context.Context, id, userID string) error {
	deleted, err := s.ideaRepo.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError("Idea")
	}
	return nil
}
