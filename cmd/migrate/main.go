package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/database"
	"github.com/pageza/mealmind/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Drop every table instead of migrating")
	flag.Parse()

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

	if *rollback {
		if err := database.DropTables(db); err != nil {
			zapLogger.Fatal("rollback failed", zap.Error(err))
		}
		zapLogger.Info("dropped all tables")
		return
	}

	if err := database.RunMigrations(db); err != nil {
		zapLogger.Fatal("migration failed", zap.Error(err))
	}
	zapLogger.Info("migrations applied")
}
