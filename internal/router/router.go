package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/pulseline-app/backend/internal/handlers"
	"github.com/pulseline-app/backend/internal/middleware"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Tag{},
		&models.Like{},
		&models.SavedPost{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Services ---
	notifier := services.NewNotifier(notificationRepo, userRepo, postRepo)
	relatedContent := services.NewRelatedContentService(postRepo)
	feedService := services.NewFeedService(postRepo, userRepo, followRepo, likeRepo, savedPostRepo, relatedContent)
	searchService := services.NewSearchService(postRepo, userRepo)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)

	// --- Public routes ---
	public := e.Group("/api/v1")
	followHandler.RegisterPublicFollowRoutes(public)
	log.Println("Public follow routes configured.")

	// --- Optional-auth routes ---
	optional := e.Group("/api/v1")
	optional.Use(middleware.OptionalJWTAuthMiddleware())
	followHandler.RegisterOptionalAuthFollowRoutes(optional)
	log.Println("Optional-auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Post + feed routes
	postHandler := handlers.NewPostHandler(postRepo, tagRepo, userRepo, feedService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Follow routes
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Saved post routes
	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, postRepo, userRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)
	log.Println("Saved post routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Search routes
	searchHandler := handlers.NewSearchHandler(searchService)
	searchHandler.RegisterSearchRoutes(api)
	log.Println("Search routes configured.")

	log.Println("All routes configured.")
}
