package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/cache"
	"github.com/pageza/mealmind/backend/internal/database"
	"github.com/pageza/mealmind/backend/internal/llm"
	"github.com/pageza/mealmind/backend/internal/logger"
	"github.com/pageza/mealmind/backend/internal/metrics"
	"github.com/pageza/mealmind/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Development: cfg.Env.IsLocal()})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("summarization failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := database.New(cfg.DB, logger)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	completer, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	if closer, ok := completer.(io.Closer); ok {
		defer closer.Close()
	}

	m := metrics.New(prometheus.NewRegistry())
	gen := service.NewGenerator(completer, cfg.LLM, m, logger)
	preferences := service.NewPreferenceService(db, gen, cache.NewSummaryCache(redisClient, logger), m, logger)

	result, err := preferences.Summarize(ctx)
	if err != nil {
		return err
	}
	if result.Summary == nil {
		fmt.Println(result.Message)
		return nil
	}
	fmt.Println(result.Summary.SummaryText)
	return nil
}
