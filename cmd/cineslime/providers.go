package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/models"
	"github.com/amaumene/cineslime/internal/services/yts"
	"github.com/amaumene/cineslime/internal/utils"
)

const serviceName = "cineslime"

func provideLogger(cfg *config.Config) *logrus.Logger {
	return utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

func provideTracerProvider(logger *logrus.Logger) (*sdktrace.TracerProvider, func()) {
	tp := utils.NewTracerProvider(serviceName, logger)
	return tp, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracer provider")
		}
	}
}

func provideDatabase(cfg *config.Config, logger *logrus.Logger) (*models.Database, func(), error) {
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.WithField("path", cfg.DatabaseFile).Info("Database initialized")

	return db, func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}, nil
}

func provideTorrentClient(cfg *config.Config, logger *logrus.Logger) *yts.Client {
	return yts.NewClient(cfg.YTSMirrors, cfg.YTSTimeout, logger)
}

func provideRateLimiter(cfg *config.Config) *utils.RateLimiter {
	return utils.NewRateLimiter(cfg.RateLimitCount, cfg.RateLimitWindow)
}
