package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/database"
	"github.com/pageza/mealmind/backend/internal/logger"
	"github.com/pageza/mealmind/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Development: cfg.Env.IsLocal()})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.New(cfg.DB, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		zapLogger.Fatal("migration failed", zap.Error(err))
	}

	profile, created, err := service.NewProfileService(db).SeedDefaults(context.Background())
	if err != nil {
		zapLogger.Fatal("failed to seed profile", zap.Error(err))
	}
	if !created {
		zapLogger.Info("profile already set up, nothing to seed", zap.String("profile_id", profile.ID.String()))
		return
	}
	zapLogger.Info("seeded default profile",
		zap.String("profile_id", profile.ID.String()),
		zap.Int("pantry_items", len(service.DefaultPantry)),
		zap.Int("utensils", len(service.DefaultUtensils)))
}
