// Package routes defines the API routing configuration.
// It wires handlers to their paths and applies staff authentication and
// permission middleware to the compliance API.
package routes

import (
	"amlwatch/internal/config"
	"amlwatch/internal/handlers"
	"amlwatch/internal/middleware"
	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/services/auth"
	"amlwatch/internal/services/metrics"
	"amlwatch/internal/services/monitoring"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the services and stores the routes need.
type Dependencies struct {
	Settings        *config.Settings
	Auth            auth.Service
	Pipeline        monitoring.Service
	Profiles        repositories.ProfileRepository
	RawTransactions repositories.RawTransactionRepository
	Cases           repositories.CaseRepository
	Watchlist       repositories.WatchlistRepository
	Exemptions      repositories.ExemptionRepository
	Limits          repositories.LimitRepository
	DB              *gorm.DB
	Redis           *redis.Client
	Metrics         *metrics.PrometheusCollector
	Log             zerolog.Logger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis, deps.Settings)
	webhookHandler := handlers.NewWebhookHandler(deps.Auth, deps.Pipeline, deps.Log)
	watchlistHandler := handlers.NewWatchlistHandler(deps.Watchlist)
	exemptionHandler := handlers.NewExemptionHandler(deps.Exemptions)
	limitHandler := handlers.NewLimitHandler(deps.Limits)
	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.RawTransactions)
	caseHandler := handlers.NewCaseHandler(deps.Cases)
	monitoringHandler := handlers.NewMonitoringHandler(deps.Settings, deps.Log)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":            deps.Settings.AppName,
			"organization":       deps.Settings.OrganizationName,
			"monitoring_enabled": deps.Settings.Flags().MonitoringEnabled,
		})
	})
	app.Get("/health", healthHandler.HealthCheck)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group(deps.Settings.Prefix())

	// Ingest is authenticated by the shared secret in the body.
	api.Post("/webhook/suspicious", webhookHandler.ProcessSuspiciousTransaction)

	authMiddleware := middleware.NewAuthMiddleware(deps.Auth, deps.Log)
	staff := authMiddleware.Handler

	watchlist := api.Group("/watchlist", staff)
	watchlist.Post("/", middleware.HasPermission(models.PermissionWatchlistWrite), watchlistHandler.AddToWatchlist)
	watchlist.Get("/", middleware.HasPermission(models.PermissionWatchlistRead), watchlistHandler.GetWatchlist)
	watchlist.Delete("/:account", middleware.HasPermission(models.PermissionWatchlistWrite), watchlistHandler.RemoveFromWatchlist)

	exemptions := api.Group("/exemptions", staff)
	exemptions.Post("/", middleware.HasPermission(models.PermissionExemptionWrite), exemptionHandler.AddExemption)
	exemptions.Get("/", middleware.HasPermission(models.PermissionExemptionRead), exemptionHandler.GetExemptions)
	exemptions.Delete("/:account", middleware.HasPermission(models.PermissionExemptionWrite), exemptionHandler.RemoveExemption)

	limits := api.Group("/limits", staff)
	limits.Post("/", middleware.HasPermission(models.PermissionLimitWrite), limitHandler.SetLimit)
	limits.Get("/", middleware.HasPermission(models.PermissionLimitRead), limitHandler.GetLimits)

	api.Get("/profiles/:account", staff, middleware.HasPermission(models.PermissionProfileRead), profileHandler.GetProfile)

	cases := api.Group("/suspicious-cases", staff)
	cases.Get("/", middleware.HasPermission(models.PermissionCaseRead), caseHandler.ListCases)
	cases.Get("/:case", middleware.HasPermission(models.PermissionCaseRead), caseHandler.GetCase)
	cases.Patch("/:case/status", middleware.HasPermission(models.PermissionCaseWrite), caseHandler.UpdateCaseStatus)

	monitoringGroup := api.Group("/monitoring", staff)
	monitoringGroup.Get("/status", monitoringHandler.GetStatus)
	monitoringGroup.Post("/toggle", middleware.HasPermission(models.PermissionMonitoringAdmin), monitoringHandler.Toggle)
	monitoringGroup.Get("/cache-stats", middleware.HasPermission(models.PermissionMonitoringAdmin), healthHandler.CacheStats)
}
