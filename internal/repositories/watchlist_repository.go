package repositories

import (
	"context"
	"time"

	"amlwatch/internal/models"
)

// ListFilter pages through soft-deletable reference lists.
type ListFilter struct {
	IsActive *bool
	Offset   int
	Limit    int
}

// WatchlistRepository defines the watchlist store.
type WatchlistRepository interface {
	// Upsert adds the account or updates and reactivates its entry.
	Upsert(ctx context.Context, w *models.Watchlist) error
	FindActive(ctx context.Context, acctNo string) (*models.Watchlist, error)
	List(ctx context.Context, filter ListFilter) ([]models.Watchlist, error)
	Deactivate(ctx context.Context, acctNo string) error
}

// ExemptionRepository defines the exemption store.
type ExemptionRepository interface {
	Upsert(ctx context.Context, e *models.TransactionExemption) error
	FindByAccount(ctx context.Context, acctNo string) (*models.TransactionExemption, error)
	List(ctx context.Context, filter ListFilter) ([]models.TransactionExemption, error)
	Deactivate(ctx context.Context, acctNo string) error

	// DeactivateExpired soft-deletes every active exemption whose expiry
	// is at or before now and reports how many were changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// LimitFilter narrows a limit listing.
type LimitFilter struct {
	Channel  string
	Type     string
	IsActive *bool
}

// LimitRepository defines the transaction limit store.
type LimitRepository interface {
	// Upsert creates or updates the limit for its (channel, type) pair.
	Upsert(ctx context.Context, l *models.TransactionLimit) error

	// FindActive returns the active limit for the pair, or nil when none exists.
	FindActive(ctx context.Context, channel, tranType string) (*models.TransactionLimit, error)

	List(ctx context.Context, filter LimitFilter) ([]models.TransactionLimit, error)
}
