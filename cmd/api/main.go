package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/app"
	"github.com/wonny/influroi/internal/pkg/config"
	"github.com/wonny/influroi/internal/pkg/logger"
)

const (
	serviceName    = "influroi-api"
	serviceVersion = "1.0.0"
)

func main() {
	// Asia/Seoul (KST)
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		time.Local = loc
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().Str("version", serviceVersion).Msg("🚀 Starting InfluROI API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	if err := application.Serve(ctx, serviceVersion); err != nil {
		log.Error().Err(err).Msg("API server stopped with error")
		return
	}

	log.Info().Msg("👋 InfluROI API Server stopped")
}
