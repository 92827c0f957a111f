// Package notifier runs the pipeline's best-effort background work: the
// external system sync and the AI analysis hand-off.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"amlwatch/internal/services/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrDispatcherClosed = errors.New("dispatcher is closed")

// Dispatch results reported to metrics
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

type DispatcherConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

type job struct {
	id   string
	kind string
	run  func(ctx context.Context) error
}

// Dispatcher is a fixed-size worker pool over a bounded queue. Submit never
// blocks: when the queue is full the job is dropped and logged.
type Dispatcher struct {
	cfg     DispatcherConfig
	jobs    chan job
	log     zerolog.Logger
	metrics metrics.MetricsCollector

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewDispatcher(cfg DispatcherConfig, log zerolog.Logger, m metrics.MetricsCollector) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}
	if m == nil {
		m = &metrics.NoopMetricsCollector{}
	}
	return &Dispatcher{
		cfg:     cfg,
		jobs:    make(chan job, cfg.QueueSize),
		log:     log,
		metrics: m,
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Submit enqueues run under kind. It reports false when the job was not
// accepted because the queue is full or the dispatcher is shut down.
func (d *Dispatcher) Submit(kind string, run func(ctx context.Context) error) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("job", kind).Err(ErrDispatcherClosed).Msg("background job rejected")
		d.metrics.RecordDispatch(kind, ResultDropped)
		return false
	}

	j := job{id: uuid.NewString(), kind: kind, run: run}
	select {
	case d.jobs <- j:
		return true
	default:
		d.log.Warn().Str("job", kind).Str("job_id", j.id).Int("queue_size", d.cfg.QueueSize).Msg("background queue full, job dropped")
		d.metrics.RecordDispatch(kind, ResultDropped)
		return false
	}
}

// Shutdown stops accepting jobs, lets the workers drain the queue and
// waits for them or for ctx, whichever comes first.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatcher shutdown: %w", ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.execute(j)
	}
}

func (d *Dispatcher) execute(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.JobTimeout)
	defer cancel()

	log := d.log.With().Str("job", j.kind).Str("job_id", j.id).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("background job panicked")
			d.metrics.RecordDispatch(j.kind, ResultFailed)
		}
	}()

	start := time.Now()
	if err := j.run(ctx); err != nil {
		log.Error().Err(err).Dur("took", time.Since(start)).Msg("background job failed")
		d.metrics.RecordDispatch(j.kind, ResultFailed)
		return
	}
	log.Debug().Dur("took", time.Since(start)).Msg("background job done")
	d.metrics.RecordDispatch(j.kind, ResultOK)
}
