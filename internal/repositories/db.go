// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"amlwatch/internal/config"
	"amlwatch/internal/models"
	"amlwatch/internal/repositories/cache"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB
var CacheService *cache.CacheService
var RedisClient *redis.Client

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadDBConfig reads pool settings from the environment.
func LoadDBConfig() DBConfig {
	return DBConfig{
		MaxIdleConns:    config.GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    config.GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
	}
}

// PostgresDSN builds the connection string from DB_* variables.
func PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		config.GetEnv("DB_NAME", "aml_monitoring"),
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)
}

// InitDB initializes the database connection and the Redis-backed cache.
// It sets up the connection pool, performs migrations,
// and configures the database with proper settings.
func InitDB(log zerolog.Logger) error {
	db, err := Open(postgres.Open(PostgresDSN()), LoadDBConfig())
	if err != nil {
		return err
	}
	DB = db

	RedisClient = cache.NewRedisClient(&cache.RedisConfig{
		Host:         config.GetEnv("REDIS_HOST", "localhost"),
		Port:         config.GetEnv("REDIS_PORT", "6379"),
		Password:     config.GetEnv("REDIS_PASSWORD", ""),
		DB:           config.GetIntEnv("REDIS_DB", 0),
		PoolSize:     config.GetIntEnv("REDIS_POOL_SIZE", 0),
		DialTimeout:  config.GetDurationEnv("REDIS_DIAL_TIMEOUT", 0),
		ReadTimeout:  config.GetDurationEnv("REDIS_READ_TIMEOUT", 0),
		WriteTimeout: config.GetDurationEnv("REDIS_WRITE_TIMEOUT", 0),
	})
	CacheService = cache.NewCacheService(RedisClient, cache.LimitTTL)
	if err := cache.Ping(context.Background(), RedisClient, 3*time.Second); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, limit lookups will hit postgres")
	}

	log.Info().Msg("postgres connected and migrations applied")
	return nil
}

// Open connects through dialector, applies pool settings and migrates the schema.
func Open(dialector gorm.Dialector, cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	// Configure GORM logger to ignore "record not found" errors
	db.Logger = logger.New(
		gormWriter{},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return db, nil
}

// Migrate creates or updates every monitoring table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CustomerProfile{},
		&models.RawTransaction{},
		&models.SuspiciousCase{},
		&models.Watchlist{},
		&models.TransactionExemption{},
		&models.TransactionLimit{},
	)
}

// PoolStats reports the current connection pool counters.
func PoolStats(db *gorm.DB) (sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}
