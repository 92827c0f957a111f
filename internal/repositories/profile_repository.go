package repositories

import (
	"context"

	"amlwatch/internal/models"
)

// ProfileRepository defines the customer profile store.
type ProfileRepository interface {
	// Upsert inserts the profile or, when acct_no exists, overwrites only
	// the given columns. It returns the stored row id.
	Upsert(ctx context.Context, profile *models.CustomerProfile, columns []string) (uint, error)

	// FindByAccount retrieves a profile by account number
	FindByAccount(ctx context.Context, acctNo string) (*models.CustomerProfile, error)
}
