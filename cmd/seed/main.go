package main

import (
	"context"
	"errors"
	"log"

	"github.com/flexfit/internal/auth"
	"github.com/flexfit/internal/config"
	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/logging"
	"github.com/flexfit/internal/seed"
	"github.com/flexfit/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	// Seeding never signs tokens, so a missing secret is fine here.
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingJWTSecret) {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	gdb, err := db.Open(cfg.DatabaseURL, db.Options{})
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	users := service.NewUserService(gdb, auth.NewHasher(cfg.BcryptCost))
	exercises := service.NewExerciseService(gdb, cfg.DefaultMediaURL)

	report, err := seed.Run(context.Background(), users, exercises, seed.Admin{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("seed complete",
		zap.Bool("admin_created", report.AdminCreated),
		zap.Int("exercises_created", report.ExercisesCreated),
		zap.Any("by_toughness", report.ByToughness),
	)
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
}
