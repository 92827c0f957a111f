package handlers

import (
	"context"
	"time"

	"amlwatch/internal/config"
	"amlwatch/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db       *gorm.DB
	redis    *redis.Client
	settings *config.Settings
}

// NewHealthHandler builds the health probe. redis may be nil when no
// cache is configured.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, settings *config.Settings) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, settings: settings}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK

	database := "connected"
	if err := h.pingDB(ctx); err != nil {
		database = "disconnected"
		status = "unhealthy"
		code = fiber.StatusServiceUnavailable
	}

	services := fiber.Map{"database": database}
	if h.redis != nil {
		// A Redis outage degrades the probe without failing it.
		if err := cache.Ping(ctx, h.redis, healthTimeout); err != nil {
			services["redis"] = "disconnected"
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			services["redis"] = "connected"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":             status,
		"monitoring_enabled": h.settings.Flags().MonitoringEnabled,
		"services":           services,
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CacheStats reports the Redis connection pool counters.
func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.redis == nil {
		return c.JSON(fiber.Map{"pool_stats": nil})
	}
	poolStats := h.redis.PoolStats()
	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
