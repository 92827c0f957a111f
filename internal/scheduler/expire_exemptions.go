package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ExemptionExpirer is the part of the exemption store the job needs.
type ExemptionExpirer interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ExpireExemptionsJob soft-deletes exemptions whose expiry has passed so
// listings of active exemptions match what the guard enforces.
type ExpireExemptionsJob struct {
	store ExemptionExpirer
	now   func() time.Time
	log   zerolog.Logger
}

func NewExpireExemptionsJob(store ExemptionExpirer, now func() time.Time, log zerolog.Logger) *ExpireExemptionsJob {
	if now == nil {
		now = time.Now
	}
	return &ExpireExemptionsJob{
		store: store,
		now:   now,
		log:   log.With().Str("job", "expire_exemptions").Logger(),
	}
}

func (j *ExpireExemptionsJob) Name() string {
	return "expire_exemptions"
}

func (j *ExpireExemptionsJob) Run(ctx context.Context) error {
	n, err := j.store.DeactivateExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("deactivate expired exemptions: %w", err)
	}
	if n > 0 {
		j.log.Info().Int64("deactivated", n).Msg("expired exemptions deactivated")
	}
	return nil
}
