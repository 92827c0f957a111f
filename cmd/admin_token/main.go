// Command admin_token prepares a fresh deployment: it seeds the default
// transaction limits, mints a staff API token and can generate a webhook
// token together with the bcrypt hash to configure on the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"amlwatch/internal/config"
	"amlwatch/internal/logging"
	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/services/auth"
	"amlwatch/internal/utils"

	"github.com/rs/zerolog"
)

type defaultLimit struct {
	channel  string
	tranType string
	limit    float64
}

var defaultLimits = []defaultLimit{
	{models.ChannelCash, models.IndicatorDebit, 50000},
	{models.ChannelCash, models.IndicatorCredit, 50000},
	{models.ChannelTransfer, models.IndicatorDebit, 100000},
	{models.ChannelTransfer, models.IndicatorCredit, 100000},
	{models.ChannelClearing, models.IndicatorDebit, 100000},
	{models.ChannelClearing, models.IndicatorCredit, 100000},
	{models.ChannelDefault, models.IndicatorDebit, 100000},
	{models.ChannelDefault, models.IndicatorCredit, 100000},
}

func main() {
	config.LoadEnv()

	staffID := flag.String("staff", config.GetEnv("ADMIN_STAFF_ID", "admin"), "staff id to embed in the token")
	role := flag.String("role", config.GetEnv("ADMIN_ROLE", models.RoleAdmin), "staff role: admin, compliance or analyst")
	ttl := flag.Duration("ttl", config.GetDurationEnv("ADMIN_TOKEN_TTL", 24*time.Hour), "token lifetime")
	seed := flag.Bool("seed", true, "seed default transaction limits")
	webhook := flag.Bool("webhook", false, "generate a webhook token and its bcrypt hash")
	flag.Parse()

	log := logging.New(logging.Config{Level: config.GetEnv("LOG_LEVEL", "info"), Pretty: true})
	settings := config.Load()

	if !models.ValidRole(*role) {
		log.Fatal().Str("role", *role).Msg("unknown role")
	}

	if *seed {
		if err := repositories.InitDB(log); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer func() {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
			repositories.CacheService.Close()
		}()

		limits := repositories.NewCachedLimitRepository(repositories.NewLimitRepository(repositories.DB), repositories.CacheService)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		created, err := seedLimits(ctx, limits, log)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed limits")
		}
		log.Info().Int("created", created).Int("defaults", len(defaultLimits)).Msg("default limits seeded")
	}

	svc := auth.NewService(auth.Config{JWTSecret: settings.JWTSecret}, log)
	token, err := svc.IssueStaffToken(*staffID, *role, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to mint staff token")
	}
	fmt.Fprintf(os.Stdout, "STAFF_TOKEN=%s\n", token)

	if *webhook {
		plain, err := utils.GenerateSecureCode()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to generate webhook token")
		}
		hash, err := auth.HashWebhookToken(plain)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash webhook token")
		}
		fmt.Fprintf(os.Stdout, "WEBHOOK_TOKEN=%s\nWEBHOOK_TOKEN_HASH=%s\n", plain, hash)
	}
}

// seedLimits creates any default (channel, type) pair that has no row yet.
// Existing rows, active or not, are left untouched.
func seedLimits(ctx context.Context, repo repositories.LimitRepository, log zerolog.Logger) (int, error) {
	created := 0
	for _, d := range defaultLimits {
		existing, err := repo.List(ctx, repositories.LimitFilter{Channel: d.channel, Type: d.tranType})
		if err != nil {
			return created, err
		}
		if len(existing) > 0 {
			continue
		}
		l := &models.TransactionLimit{Channel: d.channel, Type: d.tranType, Limit: d.limit, IsActive: true}
		if err := repo.Upsert(ctx, l); err != nil {
			return created, err
		}
		log.Debug().Str("channel", d.channel).Str("type", d.tranType).Float64("limit", d.limit).Msg("limit created")
		created++
	}
	return created, nil
}
