package services

import (
	"context"
	"fmt"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// EventPublisher publishes generation events to a message broker
type EventPublisher interface {
	PublishMessage(ctx context.Context, queueName string, message interface{}) error
}

// GenerationLogService persists generation activity, streams it to the owner
// and forwards it to the broker when one is connected.
type GenerationLogService struct {
	logRepo   *repository.GenerationLogRepository
	sseHub    *SSEHub
	publisher EventPublisher
	now       func() time.Time
}

// NewGenerationLogService creates the service. publisher may be nil.
func NewGenerationLogService(logRepo *repository.GenerationLogRepository, sseHub *SSEHub, publisher EventPublisher) *GenerationLogService {
	return &GenerationLogService{
		logRepo:   logRepo,
		sseHub:    sseHub,
		publisher: publisher,
		now:       time.Now,
	}
}

// Record stores and fans out one entry. Failures are logged, never returned.
func (s *GenerationLogService) Record(ctx context.Context, entry *models.GenerationLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		logrus.Errorf("Failed to save generation log: %v", err)
		return
	}

	if s.sseHub != nil {
		s.sseHub.BroadcastLog(entry)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishMessage(ctx, GenerationEventsQueue, entry); err != nil {
			logrus.Warnf("Failed to publish generation event: %v", err)
		}
	}
}

// GetLogsByUserID returns a page of the user's logs, newest first
func (s *GenerationLogService) GetLogsByUserID(ctx context.Context, userID string, page, pageSize int) ([]models.GenerationLog, utils.PaginationResponse, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	logs, total, err := s.logRepo.GetByUserID(ctx, userID, pageSize, utils.CalculateOffset(page, pageSize))
	if err != nil {
		return nil, utils.PaginationResponse{}, fmt.Errorf("failed to get generation logs: %w", err)
	}
	return logs, utils.CalculatePaginationInfo(total, page, pageSize), nil
}

// CleanupOldLogs deletes logs older than the retention window
func (s *GenerationLogService) CleanupOldLogs(ctx context.Context, retention time.Duration) {
	deletedCount, err := s.logRepo.DeleteOlderThan(ctx, s.now().Add(-retention))
	if err != nil {
		logrus.Errorf("Failed to cleanup old logs: %v", err)
		return
	}

	if deletedCount > 0 {
		logrus.Infof("Log cleanup completed: deleted %d log entries older than %s", deletedCount, retention)
	} else {
		logrus.Debugf("Log cleanup completed: no logs older than %s", retention)
	}
}
