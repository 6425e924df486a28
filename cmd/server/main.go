package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/sajibdev/chirpnet/backend/internal/logger"
	"github.com/sajibdev/chirpnet/backend/internal/media"
	"github.com/sajibdev/chirpnet/backend/internal/router"
	"github.com/sajibdev/chirpnet/backend/pkg/config"
	"github.com/sajibdev/chirpnet/backend/validators"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: "chirpnet-api",
	})

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	mediaStore, err := media.NewCloudinaryStore(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, mediaStore); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
