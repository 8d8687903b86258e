package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msamy/portfolio-api/adapters/event"
	httpAdapter "github.com/msamy/portfolio-api/adapters/http"
	"github.com/msamy/portfolio-api/adapters/media_storage"
	"github.com/msamy/portfolio-api/adapters/persistence"
	authUC "github.com/msamy/portfolio-api/internal/application/usecase/auth"
	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/internal/config"
	"github.com/msamy/portfolio-api/pkg/auth"
	"github.com/msamy/portfolio-api/pkg/logger"
	"github.com/msamy/portfolio-api/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.New(cfg.App.Env)

	// Tracing
	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
	if err != nil {
		log.Fatalf("FATAL: cannot init tracing: %v", err)
	}
	defer tracerProvider.Shutdown(context.Background())

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	portfolioCache := persistence.NewRedisPortfolioCache(redisClient, cfg.Redis.CacheTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	blobStore, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize blob store: %v", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	loadPortfolioUseCase := portfolioUC.NewLoadPortfolioUseCase(portfolioRepo, portfolioCache, appLogger)
	saveSectionUseCase := portfolioUC.NewSaveSectionUseCase(portfolioRepo, portfolioCache, kafkaClient, appLogger)
	saveProfileUseCase := portfolioUC.NewSaveProfileUseCase(portfolioRepo, blobStore, saveSectionUseCase, cfg.Cloudinary.Folder, appLogger)
	saveProjectsUseCase := portfolioUC.NewSaveProjectsUseCase(portfolioRepo, blobStore, saveSectionUseCase, cfg.Cloudinary.Folder, appLogger)
	uploadImageUseCase := portfolioUC.NewUploadImageUseCase(blobStore, cfg.Cloudinary.Folder, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, appLogger)
	portfolioHandler := httpAdapter.NewPortfolioHandler(loadPortfolioUseCase, appLogger)
	sectionHandler := httpAdapter.NewSectionHandler(saveSectionUseCase, saveProfileUseCase, saveProjectsUseCase, appLogger)
	uploadHandler := httpAdapter.NewUploadHandler(uploadImageUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc, appLogger)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{

		admin := api.Group("/admin")
		{

			adminAuth := admin.Group("/auth")
			adminAuth.POST("/login", authHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{

				adminPrivate.GET("/health-auth", func(c *gin.Context) {

					userID, ok := httpAdapter.GetOwnerIDFromGinContext(c)
					if !ok {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
						return
					}
					c.JSON(http.StatusOK, gin.H{
						"status":   "OK",
						"message":  "Authentication middleware is working!",
						"owner_id": userID,
					})
				})

				adminPrivate.POST("/profile", sectionHandler.SaveProfile)
				adminPrivate.POST("/projects", sectionHandler.SaveProjects)
				adminPrivate.POST("/experiences", sectionHandler.SaveExperiences)
				adminPrivate.POST("/homepage", sectionHandler.SaveHomepage)
				adminPrivate.POST("/education", sectionHandler.SaveEducation)
				adminPrivate.POST("/skills", sectionHandler.SaveSkills)
				adminPrivate.POST("/services", sectionHandler.SaveServices)
				adminPrivate.POST("/contact", sectionHandler.SaveContact)
				adminPrivate.POST("/courses", sectionHandler.SaveCourses)

				adminPrivate.POST("/upload", uploadHandler.UploadImage)
				adminPrivate.DELETE("/upload", uploadHandler.DeleteImage)
			}
		}

		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/portfolio", portfolioHandler.GetPortfolio)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
