package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

// InitDB initializes the database connection and performs migrations
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if !cfg.Complete() {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	// Migration: connection_status was added after the first release, backfill it
	var untagged int64
	if err := db.Model(&models.Credential{}).Where("connection_status IS NULL OR connection_status = ''").Count(&untagged).Error; err != nil {
		logrus.Warnf("Failed to count credentials without connection status: %v", err)
	} else if untagged > 0 {
		logrus.Infof("Marking %d credentials as untested...", untagged)
		if err := db.Model(&models.Credential{}).
			Where("connection_status IS NULL OR connection_status = ''").
			UpdateColumn("connection_status", models.ConnectionUntested).Error; err != nil {
			logrus.Warnf("Failed to backfill connection status: %v", err)
		}
	}


	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// GormConfig returns the gorm configuration shared by every dialect
func GormConfig() *gorm.Config {
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	return &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// Migrate creates or updates every table of the service
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.LoginHistory{},
		&models.Credential{},
		&models.Idea{},
		&models.Brief{},
		&models.GenerationLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
