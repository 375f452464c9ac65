package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

type BriefService struct {
	briefRepo *repository.BriefRepository
}

func NewBriefService(briefRepo *repository.BriefRepository) *BriefService {
	return &BriefService{briefRepo: briefRepo}
}

// SaveBrief stores a generated brief and marks the linked idea used
func (s *BriefService) SaveBrief(ctx context.Context, userID string, req *models.SaveBriefRequest) (*models.Brief, error) {
	if strings.TrimSpace(req.Persona) == "" || strings.TrimSpace(req.Industry) == "" ||
		strings.TrimSpace(req.Idea) == "" || strings.TrimSpace(req.Brief) == "" {
		return nil, utils.NewValidationError("Persona, industry, idea, and brief are required")
	}

	brief := &models.Brief{
		UserID:   userID,
		Persona:  req.Persona,
		Industry: req.Industry,
		Idea:     req.Idea,
		Brief:    req.Brief,
	}
	if req.IdeaID != nil && strings.TrimSpace(*req.IdeaID) != "" {
		ideaID := strings.TrimSpace(*req.IdeaID)
		brief.IdeaID = &ideaID
	}

	if err := s.briefRepo.CreateAndMarkIdea(ctx, brief); err != nil {
		return nil, fmt.Errorf("failed to save brief: %w", err)
	}
	return brief, nil
}

// ListBriefs returns the user's briefs, newest first
func (s *BriefService) ListBriefs(ctx context.Context, userID string) ([]models.Brief, error) {
	briefs, err := s.briefRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list briefs: %w", err)
	}
	return briefs, nil
}
