package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/config"
	"github.com/soujanya-a-n1/FoodSphere/internal/delivery"
	"github.com/soujanya-a-n1/FoodSphere/internal/repository"
	"github.com/soujanya-a-n1/FoodSphere/internal/usecase"
	"github.com/soujanya-a-n1/FoodSphere/pkg/db"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting FoodSphere server...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	if err := db.RunMigrations(database); err != nil {
		logger.Fatalf("FATAL: Failed to run database migrations: %v", err)
	}
	logger.Info("Database schema is up to date.")

	userRepo := repository.NewPostgresUserRepository(database, logger)
	catalogRepo := repository.NewPostgresCatalogRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	logger.Info("Repositories initialized.")

	userUseCase := usecase.NewUserUseCase(userRepo, logger)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, catalogRepo, logger)
	logger.Info("Use cases initialized.")

	authHandler := delivery.NewAuthHandler(userUseCase, logger)
	restaurantHandler := delivery.NewRestaurantHandler(catalogUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	protected := api.Group("")
	protected.Use(delivery.AuthMiddleware(userUseCase, logger))

	authHandler.RegisterRoutes(api, protected)
	restaurantHandler.RegisterRoutes(api, protected)
	orderHandler.RegisterRoutes(protected)
	logger.Info("Routes registered.")

	logger.Infof("Listening on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
