package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/api"
	"github.com/pageza/mealmind/backend/internal/archive"
	"github.com/pageza/mealmind/backend/internal/cache"
	"github.com/pageza/mealmind/backend/internal/database"
	"github.com/pageza/mealmind/backend/internal/llm"
	"github.com/pageza/mealmind/backend/internal/logger"
	"github.com/pageza/mealmind/backend/internal/metrics"
	"github.com/pageza/mealmind/backend/internal/middleware"
	"github.com/pageza/mealmind/backend/internal/router"
	"github.com/pageza/mealmind/backend/internal/server"
	"github.com/pageza/mealmind/backend/internal/service"
	"github.com/pageza/mealmind/backend/internal/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Env.IsLocal(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

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

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	completer, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	if closer, ok := completer.(io.Closer); ok {
		defer closer.Close()
	}

	s3Config, err := config.NewS3Config(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	archiver := archive.New(s3Config, logger)

	gen := service.NewGenerator(completer, cfg.LLM, m, logger)
	profiles := service.NewProfileService(db)
	sessions := service.NewSessionService(db)
	preferences := service.NewPreferenceService(db, gen, cache.NewSummaryCache(redisClient, logger), m, logger)

	services := api.Services{
		Profiles:        profiles,
		Sessions:        sessions,
		Recommendations: service.NewRecommendationService(db, gen, profiles, sessions, preferences, archiver, logger),
		Feedback:        service.NewFeedbackService(db),
		SavedMeals:      service.NewSavedMealService(db),
		Preferences:     preferences,
		Plans:           service.NewPlanService(db, gen, profiles, preferences, archiver, logger),
	}

	engine := router.SetupRouter(services, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
		Health:         api.NewHealthHandler(db, redisClient, logger),
		Gatherer:       registry,
		RateLimiter:    middleware.NewGenerationRateLimiter(redisClient, cfg.RateLimit, logger),
	})

	logger.Info("starting server",
		zap.String("env", string(cfg.Env)),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("db_driver", cfg.DB.Driver))

	return server.New(cfg.Server, engine, logger).Run(ctx)
}
