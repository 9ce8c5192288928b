package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apptHandler "appointment-scheduler/internal/appointment/handler"
	apptRepository "appointment-scheduler/internal/appointment/repository"
	apptService "appointment-scheduler/internal/appointment/service"
	"appointment-scheduler/internal/config"
	"appointment-scheduler/internal/database"
	"appointment-scheduler/internal/middleware"
	userHandler "appointment-scheduler/internal/user/handler"
	userRepository "appointment-scheduler/internal/user/repository"
	userService "appointment-scheduler/internal/user/service"
)

// SetupRoutes assembles the gin engine and starts the background session
// cleanup job; ctx cancellation stops the job on shutdown.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *database.Database) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(middleware.CORSMiddleware(&cfg.CORS))
	}
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepo := userRepository.NewRepository(db)
	sessionRepo := userRepository.NewSessionRepository(db)
	userSvc := userService.NewService(userRepo, sessionRepo, cfg)
	userHdl := userHandler.NewHandler(userSvc, cfg)

	go userSvc.StartSessionCleanupJob(ctx, time.Hour)

	apptRepo := apptRepository.NewRepository(db)
	apptSvc := apptService.NewService(apptRepo)
	apptHdl := apptHandler.NewHandler(apptSvc)

	api := router.Group("/api")
	{
		userHdl.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, userRepo, sessionRepo))
		{
			userHdl.RegisterProfileRoutes(protected)
			apptHdl.RegisterRoutes(protected)
		}
	}

	return router
}
