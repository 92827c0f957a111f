// Package guard answers the two pre-scoring questions about an account:
// is it exempt from monitoring, and is it on the watchlist.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
)

// ExemptionLookup is the subset of the exemption store the guard needs.
type ExemptionLookup interface {
	FindByAccount(ctx context.Context, acctNo string) (*models.TransactionExemption, error)
}

// WatchlistLookup is the subset of the watchlist store the guard needs.
type WatchlistLookup interface {
	FindActive(ctx context.Context, acctNo string) (*models.Watchlist, error)
}

type ExemptionGuard struct {
	store ExemptionLookup
	now   func() time.Time
}

func NewExemptionGuard(store ExemptionLookup, now func() time.Time) *ExemptionGuard {
	if store == nil {
		panic("exemption store is required")
	}
	if now == nil {
		now = time.Now
	}
	return &ExemptionGuard{store: store, now: now}
}

// IsExempt reports whether acctNo has an exemption in effect right now.
func (g *ExemptionGuard) IsExempt(ctx context.Context, acctNo string) (bool, error) {
	e, err := g.store.FindByAccount(ctx, acctNo)
	if err != nil {
		if errors.Is(err, repositories.ErrExemptionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("exemption lookup: %w", err)
	}
	return e.InEffect(g.now()), nil
}

type WatchlistGuard struct {
	store WatchlistLookup
}

func NewWatchlistGuard(store WatchlistLookup) *WatchlistGuard {
	if store == nil {
		panic("watchlist store is required")
	}
	return &WatchlistGuard{store: store}
}

// ReasonIfWatchlisted returns the monitoring reason of the active entry
// for acctNo, or nil when the account is not watched.
func (g *WatchlistGuard) ReasonIfWatchlisted(ctx context.Context, acctNo string) (*string, error) {
	w, err := g.store.FindActive(ctx, acctNo)
	if err != nil {
		if errors.Is(err, repositories.ErrWatchlistNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("watchlist lookup: %w", err)
	}
	reason := w.ReasonForMonitoring
	return &reason, nil
}
