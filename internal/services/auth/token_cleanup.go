package auth

import (
	"context"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenCleanupService removes expired and revoked refresh tokens
type TokenCleanupService struct {
	refreshTokenRepo *repository.RefreshTokenRepository
	now              func() time.Time
}

func NewTokenCleanupService(db *gorm.DB) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		now:              time.Now,
	}
}

// Cleanup performs one cleanup pass; it is scheduled by the cron runner
func (s *TokenCleanupService) Cleanup(ctx context.Context) {
	logrus.Info("Starting token cleanup...")

	removed, err := s.refreshTokenRepo.Cleanup(ctx, s.now())
	if err != nil {
		logrus.Errorf("Failed to cleanup tokens: %v", err)
		return
	}

	logrus.Infof("Token cleanup completed: removed %d tokens", removed)
}
