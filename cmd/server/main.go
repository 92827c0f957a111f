// Package main is the entry point for the monitoring service.
// It wires storage, the pipeline and its background hand-offs, the HTTP
// surface and the maintenance scheduler, then serves until signalled.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"amlwatch/internal/config"
	"amlwatch/internal/logging"
	"amlwatch/internal/repositories"
	"amlwatch/internal/routes"
	"amlwatch/internal/scheduler"
	"amlwatch/internal/services/auth"
	"amlwatch/internal/services/guard"
	"amlwatch/internal/services/metrics"
	"amlwatch/internal/services/monitoring"
	"amlwatch/internal/services/notifier"
	"amlwatch/internal/services/risk"
	"amlwatch/internal/services/threshold"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	config.LoadEnv()

	log := logging.New(logging.Config{
		Level:  config.GetEnv("LOG_LEVEL", "info"),
		Pretty: config.GetBoolEnv("LOG_PRETTY", !config.IsProduction()),
	})
	logging.SetGlobalLogger(log)

	settings := config.Load()

	if err := repositories.InitDB(log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer closeStores(log)

	collector := metrics.NewPrometheusCollector()

	dispatcher := notifier.NewDispatcher(notifier.DispatcherConfig{
		Workers:    settings.DispatchWorkers,
		QueueSize:  settings.DispatchQueueSize,
		JobTimeout: settings.ExternalAPITimeout + 5*time.Second,
	}, logging.Component(log, "dispatcher"), collector)
	dispatcher.Start()

	aiQueue, err := notifier.NewAIQueue(settings.AIQueueBackend, repositories.RedisClient, settings.KafkaBrokers, settings.AIQueueName)
	if err != nil {
		log.Fatal().Err(err).Str("backend", settings.AIQueueBackend).Msg("failed to configure AI analysis queue")
	}
	defer aiQueue.Close()

	profiles := repositories.NewProfileRepository(repositories.DB)
	raw := repositories.NewRawTransactionRepository(repositories.DB)
	cases := repositories.NewCaseRepository(repositories.DB)
	watchlist := repositories.NewWatchlistRepository(repositories.DB)
	exemptions := repositories.NewExemptionRepository(repositories.DB)
	limits := repositories.NewCachedLimitRepository(repositories.NewLimitRepository(repositories.DB), repositories.CacheService)

	pipeline := monitoring.NewPipeline(monitoring.PipelineConfig{
		Settings:        settings,
		Exemptions:      guard.NewExemptionGuard(exemptions, nil),
		Watchlist:       guard.NewWatchlistGuard(watchlist),
		Scorer:          risk.NewScorer(risk.WithLogger(logging.Component(log, "risk"))),
		Threshold:       threshold.NewChecker(limits, logging.Component(log, "threshold")),
		Profiles:        profiles,
		RawTransactions: raw,
		Cases:           cases,
		Background:      dispatcher,
		AIQueue:         aiQueue,
		Notifier:        notifier.NewExternalNotifier(settings.ExternalAPIURL, settings.ExternalAPITimeout, logging.Component(log, "external")),
		Metrics:         collector,
		Log:             logging.Component(log, "pipeline"),
	})

	authService := auth.NewService(auth.Config{
		WebhookTokenHash: settings.WebhookTokenHash,
		WebhookToken:     settings.WebhookToken,
		JWTSecret:        settings.JWTSecret,
	}, logging.Component(log, "auth"))

	app := fiber.New(fiber.Config{
		AppName:      settings.AppName,
		BodyLimit:    config.GetIntEnv("BODY_LIMIT_BYTES", 1024*1024),
		ReadTimeout:  config.GetDurationEnv("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: config.GetDurationEnv("WRITE_TIMEOUT", 60*time.Second),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: settings.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(collector.Middleware())

	app.Use(settings.Prefix()+"/webhook", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("WEBHOOK_RATE_LIMIT", 600),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Settings:        settings,
		Auth:            authService,
		Pipeline:        pipeline,
		Profiles:        profiles,
		RawTransactions: raw,
		Cases:           cases,
		Watchlist:       watchlist,
		Exemptions:      exemptions,
		Limits:          limits,
		DB:              repositories.DB,
		Redis:           repositories.RedisClient,
		Metrics:         collector,
		Log:             logging.Component(log, "http"),
	})

	sched := scheduler.New(log, time.Minute)
	jobs := []struct {
		schedule string
		job      scheduler.Job
	}{
		{config.GetEnv("EXPIRE_EXEMPTIONS_SCHEDULE", "@every 1h"), scheduler.NewExpireExemptionsJob(exemptions, nil, log)},
		{config.GetEnv("POOL_STATS_SCHEDULE", "@every 1m"), scheduler.NewPoolStatsJob(func() (sql.DBStats, error) {
			return repositories.PoolStats(repositories.DB)
		}, collector, log)},
	}
	for _, j := range jobs {
		if err := sched.AddJob(j.schedule, j.job); err != nil {
			log.Fatal().Err(err).Str("job", j.job.Name()).Msg("failed to schedule job")
		}
	}
	sched.Start()

	go watchReload(settings, log)

	go func() {
		addr := ":" + settings.Port
		log.Info().
			Str("addr", addr).
			Str("organization", settings.OrganizationName).
			Bool("monitoring_enabled", settings.Flags().MonitoringEnabled).
			Msg("server starting")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second))
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	sched.Stop(ctx)
	if err := dispatcher.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("background jobs abandoned at shutdown")
	}
	log.Info().Msg("server stopped")
}

// watchReload re-reads .env and republishes the feature switches on SIGHUP.
func watchReload(settings *config.Settings, log zerolog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	for range hup {
		if err := config.ReloadEnv(); err != nil {
			log.Warn().Err(err).Msg("reload: .env not re-read, using process environment")
		}
		next := config.FlagsFromEnv()
		prev := settings.Apply(next)
		log.Info().
			Interface("previous", prev).
			Interface("current", next).
			Msg("feature switches reloaded")
	}
}

func closeStores(log zerolog.Logger) {
	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close database connection")
			}
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close Redis connection")
		}
	}
}
