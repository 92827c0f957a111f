package scheduler

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// StatsRecorder receives connection pool samples.
type StatsRecorder interface {
	RecordDBStats(s sql.DBStats)
}

// PoolStatsJob samples the database pool into the metrics registry.
type PoolStatsJob struct {
	stats    func() (sql.DBStats, error)
	recorder StatsRecorder
	log      zerolog.Logger
}

func NewPoolStatsJob(stats func() (sql.DBStats, error), recorder StatsRecorder, log zerolog.Logger) *PoolStatsJob {
	return &PoolStatsJob{
		stats:    stats,
		recorder: recorder,
		log:      log.With().Str("job", "pool_stats").Logger(),
	}
}

func (j *PoolStatsJob) Name() string {
	return "pool_stats"
}

func (j *PoolStatsJob) Run(ctx context.Context) error {
	s, err := j.stats()
	if err != nil {
		return fmt.Errorf("read pool stats: %w", err)
	}
	j.recorder.RecordDBStats(s)
	if s.WaitCount > 0 {
		j.log.Debug().
			Int("open", s.OpenConnections).
			Int("in_use", s.InUse).
			Int64("wait_count", s.WaitCount).
			Dur("wait_duration", s.WaitDuration).
			Msg("database pool contention")
	}
	return nil
}
