package router

import (
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/handlers"
	"github.com/onegreenvn/content-multiplier-backend/internal/middleware"
	"github.com/onegreenvn/content-multiplier-backend/internal/services"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/auth"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/credential"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/excel"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/generation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto a Gin engine.
// logService and sseHub are shared with the background jobs in main.
func SetupRouter(db *gorm.DB, cfg *config.Config, sseHub *services.SSEHub, logService *services.GenerationLogService, dispatcher generation.Dispatcher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-MAC-Address"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	loginHistoryRepo := repository.NewLoginHistoryRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	briefRepo := repository.NewBriefRepository(db)

	// Services
	authService := auth.NewAuthService(db, cfg)
	userService := services.NewUserService(userRepo, loginHistoryRepo)
	credentialService := credential.NewService(credentialRepo)
	healthChecker := credential.NewHealthChecker(credentialRepo, dispatcher, generation.GenerationProviders)
	generationService := generation.NewService(
		credential.NewSelector(credentialRepo),
		dispatcher,
		credentialRepo,
		logService,
		loginHistoryRepo,
	)
	ideaService := services.NewIdeaService(ideaRepo)
	briefService := services.NewBriefService(briefRepo)
	excelService := excel.NewExcelService(ideaRepo, briefRepo, cfg.ExportsDir)

	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(userService)
	apiKeyHandler := handlers.NewAPIKeyHandler(credentialService, healthChecker)
	ideaHandler := handlers.NewIdeaHandler(generationService, ideaService)
	briefHandler := handlers.NewBriefHandler(generationService, briefService)
	excelHandler := handlers.NewExcelHandler(excelService)
	logHandler := handlers.NewGenerationLogHandler(logService, sseHub)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)

		// Auth routes (public)
		authPublic := api.Group("/auth")
		{
			authPublic.POST("/register", authHandler.Register)
			authPublic.POST("/login", authHandler.Login)
			authPublic.POST("/refresh", authHandler.RefreshToken)
		}

		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			authProtected := protected.Group("/auth")
			{
				authProtected.POST("/logout", authHandler.Logout)
				authProtected.GET("/me", authHandler.Me)
			}

			users := protected.Group("/users")
			{
				users.GET("", adminHandler.GetAllUsers)
				users.GET("/:id", adminHandler.GetUser)
				users.PUT("/:id", middleware.RequireAdmin(), adminHandler.UpdateUser)
				users.DELETE("/:id", middleware.RequireAdmin(), adminHandler.DeleteUser)
			}
			protected.GET("/login-history", adminHandler.GetLoginHistory)

			apiKeys := protected.Group("/api-keys")
			{
				apiKeys.GET("", apiKeyHandler.List)
				apiKeys.POST("", apiKeyHandler.Create)
				apiKeys.GET("/:id", apiKeyHandler.Get)
				apiKeys.PUT("/:id", apiKeyHandler.Update)
				apiKeys.DELETE("/:id", apiKeyHandler.Delete)
				apiKeys.POST("/:id/test", apiKeyHandler.Test)
			}

			ideas := protected.Group("/ideas")
			{
				ideas.POST("/generate", ideaHandler.GenerateIdeas)
				ideas.POST("/save", ideaHandler.SaveIdea)
				ideas.GET("", ideaHandler.ListIdeas)
				ideas.GET("/export", excelHandler.ExportIdeas)
				ideas.DELETE("/:id", ideaHandler.DeleteIdea)
			}

			briefs := protected.Group("/briefs")
			{
				briefs.POST("/generate", briefHandler.GenerateBrief)
				briefs.POST("", briefHandler.SaveBrief)
				briefs.GET("", briefHandler.ListBriefs)
				briefs.GET("/export", excelHandler.ExportBriefs)
			}

			logs := protected.Group("/generation-logs")
			{
				logs.GET("", logHandler.GetLogs)
				logs.GET("/stream", logHandler.StreamLogs)
			}
		}
	}

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
