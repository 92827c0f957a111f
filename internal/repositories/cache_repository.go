package repositories

import (
	"context"
	"sync/atomic"
	"time"

	"amlwatch/internal/models"

	"github.com/rs/zerolog/log"
)

// Defaults for the limit cache circuit.
const (
	DefaultCacheCallTimeout = 150 * time.Millisecond
	DefaultCacheCooldown    = 30 * time.Second
)

// LimitCache defines the cache operations used for limit lookups.
type LimitCache interface {
	GetLimit(ctx context.Context, channel, tranType string) (*models.TransactionLimit, bool, error)
	SetLimit(ctx context.Context, channel, tranType string, limit *models.TransactionLimit) error
	InvalidateLimit(ctx context.Context, channel, tranType string) error
}

type CacheOption func(*cachedLimitRepository)

// WithCacheCallTimeout bounds each cache round trip.
func WithCacheCallTimeout(d time.Duration) CacheOption {
	return func(r *cachedLimitRepository) { r.callTimeout = d }
}

// WithCacheCooldown sets how long the cache is bypassed after a failure.
func WithCacheCooldown(d time.Duration) CacheOption {
	return func(r *cachedLimitRepository) { r.cooldown = d }
}

func WithCacheClock(now func() time.Time) CacheOption {
	return func(r *cachedLimitRepository) { r.now = now }
}

type cachedLimitRepository struct {
	LimitRepository
	cache       LimitCache
	callTimeout time.Duration
	cooldown    time.Duration
	now         func() time.Time

	// unix nanos until which lookups go straight to the database
	bypassUntil atomic.Int64
}

// NewCachedLimitRepository serves FindActive from cache and invalidates on
// Upsert. Every cache call is bounded by a short timeout; a failure trips
// the cache off for a cooldown so an unreachable Redis costs one timeout
// per cooldown instead of one per lookup.
func NewCachedLimitRepository(repo LimitRepository, cache LimitCache, opts ...CacheOption) LimitRepository {
	if cache == nil {
		return repo
	}
	r := &cachedLimitRepository{
		LimitRepository: repo,
		cache:           cache,
		callTimeout:     DefaultCacheCallTimeout,
		cooldown:        DefaultCacheCooldown,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *cachedLimitRepository) available() bool {
	return r.now().UnixNano() >= r.bypassUntil.Load()
}

func (r *cachedLimitRepository) trip(err error, op, channel, tranType string) {
	r.bypassUntil.Store(r.now().Add(r.cooldown).UnixNano())
	log.Warn().
		Err(err).
		Str("op", op).
		Str("channel", channel).
		Str("type", tranType).
		Dur("cooldown", r.cooldown).
		Msg("limit cache unavailable, bypassing")
}

func (r *cachedLimitRepository) FindActive(ctx context.Context, channel, tranType string) (*models.TransactionLimit, error) {
	if r.available() {
		cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
		limit, found, err := r.cache.GetLimit(cctx, channel, tranType)
		cancel()
		if err != nil {
			r.trip(err, "get", channel, tranType)
		} else if found {
			return limit, nil
		}
	}

	limit, err := r.LimitRepository.FindActive(ctx, channel, tranType)
	if err != nil {
		return nil, err
	}

	if r.available() {
		cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
		err := r.cache.SetLimit(cctx, channel, tranType, limit)
		cancel()
		if err != nil {
			r.trip(err, "set", channel, tranType)
		}
	}
	return limit, nil
}

// Upsert always attempts invalidation, even while bypassed, so a recovered
// cache never serves the previous value.
func (r *cachedLimitRepository) Upsert(ctx context.Context, l *models.TransactionLimit) error {
	if err := r.LimitRepository.Upsert(ctx, l); err != nil {
		return err
	}
	cctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	if err := r.cache.InvalidateLimit(cctx, l.Channel, l.Type); err != nil {
		r.trip(err, "invalidate", l.Channel, l.Type)
	}
	return nil
}
