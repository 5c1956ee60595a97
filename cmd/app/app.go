package main

import (
	"os"

	"github.com/findthisfit/go-backend/internal/app"
	config "github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil {
		log.Warnf(".env file not found, using environment variables")
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
