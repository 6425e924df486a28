package router

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sajibdev/chirpnet/backend/internal/handlers"
	"github.com/sajibdev/chirpnet/backend/internal/logger"
	"github.com/sajibdev/chirpnet/backend/internal/media"
	appmw "github.com/sajibdev/chirpnet/backend/internal/middleware"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/repositories"
	"github.com/sajibdev/chirpnet/backend/internal/services"
	"github.com/sajibdev/chirpnet/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const mongoDatabase = "chirpnet"

// SetupMiddleware configures global Echo middleware.
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
}

// SetupRoutes wires repositories, services and handlers onto the Echo
// instance and runs the store migrations.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, mediaStore media.Store) error {
	if err := pgdb.AutoMigrate(&models.Notification{}); err != nil {
		return err
	}

	mongoDB := mgClient.Database(mongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		return err
	}
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, postRepo, notificationService, mediaStore)
	postService := services.NewPostService(postRepo, userRepo, notificationService, mediaStore)

	e.GET("/health", handlers.HealthCheck)

	sessionAuth := appmw.SessionAuth(authService)

	authGroup := e.Group("/api/auth")
	authProtected := e.Group("/api/auth")
	authProtected.Use(sessionAuth)
	authHandler := handlers.NewAuthHandler(authService, cfg.Env != "development")
	authHandler.RegisterAuthRoutes(authGroup, authProtected)

	usersOpen := e.Group("/api/users")
	usersProtected := e.Group("/api/users")
	usersProtected.Use(sessionAuth)
	userHandler := handlers.NewUserHandler(userService, authHandler)
	userHandler.RegisterUserRoutes(usersOpen, usersProtected)

	postsGroup := e.Group("/api/posts")
	postsGroup.Use(sessionAuth)
	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(postsGroup)

	notificationsGroup := e.Group("/api/notifications")
	notificationsGroup.Use(sessionAuth)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(notificationsGroup)

	logger.Info("all routes configured")
	return nil
}
