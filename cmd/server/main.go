package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/docs"
	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/database"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/router"
	"github.com/onegreenvn/content-multiplier-backend/internal/services"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/auth"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/credential"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/generation"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/scheduler"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	jobTimeout       = 5 * time.Minute
	healthCheckBatch = 20
)

func main() {
	cfg := config.Load()

	if cfg.BasePath != "" {
		docs.SwaggerInfo.BasePath = cfg.BasePath
	}

	utils.ConfigureLogging(cfg.LogLevel, cfg.LogFile)

	if err := utils.InitSentry(cfg.SentryDSN, os.Getenv("GIN_MODE")); err != nil {
		logrus.Warnf("Failed to initialize Sentry: %v", err)
	}
	defer utils.FlushSentry(2 * time.Second)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	registry, err := provider.NewRegistry(config.DefaultProviderRoutes(), nil, cfg.ProviderTimeout)
	if err != nil {
		logrus.Fatalf("Failed to initialize provider registry: %v", err)
	}

	// Shared between the log service and the stream handler
	sseHub := services.NewSSEHub()

	var publisher services.EventPublisher
	rabbitMQService, err := services.NewRabbitMQService(cfg.RabbitMQ)
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
	} else {
		logrus.Info("RabbitMQ service initialized")
		publisher = rabbitMQService
		defer rabbitMQService.Close()
	}

	authService := auth.NewAuthService(db, cfg)
	if err := authService.EnsureAdminUser(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Warnf("Failed to create admin user: %v", err)
	} else {
		logrus.Info("Admin user check completed")
	}

	logService := services.NewGenerationLogService(repository.NewGenerationLogRepository(db), sseHub, publisher)

	// Maintenance jobs
	tokenCleanupService := auth.NewTokenCleanupService(db)
	healthChecker := credential.NewHealthChecker(repository.NewCredentialRepository(db), registry, generation.GenerationProviders)

	jobs := scheduler.NewScheduler(jobTimeout)
	if err := jobs.Add("token-cleanup", cfg.TokenCleanupSchedule, tokenCleanupService.Cleanup); err != nil {
		logrus.Warnf("%v", err)
	}
	if err := jobs.Add("log-cleanup", cfg.LogCleanupSchedule, func(ctx context.Context) {
		logService.CleanupOldLogs(ctx, cfg.LogRetention)
	}); err != nil {
		logrus.Warnf("%v", err)
	}
	if err := jobs.Add("api-key-health", cfg.HealthCheckSchedule, func(ctx context.Context) {
		healthChecker.RunUntested(ctx, healthCheckBatch)
	}); err != nil {
		logrus.Warnf("%v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	r := router.SetupRouter(db, cfg, sseHub, logService, registry)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		logrus.Infof("API Health Check: http://localhost:%s/api/health", cfg.Port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}
