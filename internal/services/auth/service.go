// Package auth verifies callers: the shared-secret token carried by the
// ingest webhook and the JWTs presented by compliance staff.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"amlwatch/internal/models"
	"amlwatch/internal/utils"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidWebhookToken  = errors.New("invalid webhook token")
	ErrWebhookNotConfigured = errors.New("webhook token not configured")
	ErrInvalidStaffToken    = errors.New("invalid staff token")
)

type Service interface {
	VerifyWebhookToken(perm string) error
	IssueStaffToken(staffID, role string, ttl time.Duration) (string, error)
	ParseStaffToken(token string) (*models.StaffClaims, error)
}

type Config struct {
	// WebhookTokenHash is a bcrypt hash of the webhook secret. When set it
	// takes precedence over WebhookToken.
	WebhookTokenHash string
	WebhookToken     string
	JWTSecret        string
}

type service struct {
	cfg Config
	log zerolog.Logger
}

func NewService(cfg Config, log zerolog.Logger) Service {
	return &service{cfg: cfg, log: log}
}

func (s *service) VerifyWebhookToken(perm string) error {
	if perm == "" {
		return ErrInvalidWebhookToken
	}

	if s.cfg.WebhookTokenHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.WebhookTokenHash), []byte(perm)); err != nil {
			s.log.Warn().Msg("webhook token rejected")
			return ErrInvalidWebhookToken
		}
		return nil
	}

	if s.cfg.WebhookToken == "" {
		s.log.Error().Msg("neither WEBHOOK_TOKEN_HASH nor WEBHOOK_TOKEN is set")
		return ErrWebhookNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(s.cfg.WebhookToken), []byte(perm)) != 1 {
		s.log.Warn().Msg("webhook token rejected")
		return ErrInvalidWebhookToken
	}
	return nil
}

func (s *service) IssueStaffToken(staffID, role string, ttl time.Duration) (string, error) {
	return utils.GenerateStaffToken(s.cfg.JWTSecret, staffID, role, ttl)
}

func (s *service) ParseStaffToken(token string) (*models.StaffClaims, error) {
	claims, err := utils.ParseToken(s.cfg.JWTSecret, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("staff token validation failed")
		return nil, ErrInvalidStaffToken
	}
	return claims, nil
}

// HashWebhookToken returns the bcrypt hash to store in WEBHOOK_TOKEN_HASH.
func HashWebhookToken(token string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
