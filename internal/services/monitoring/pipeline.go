// Package monitoring runs incoming transactions through the AML pipeline:
// exemption and watchlist guards, risk scoring, profile and raw-transaction
// persistence, limit checks and case creation, followed by best-effort
// background hand-offs.
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amlwatch/internal/config"
	apperrors "amlwatch/internal/errors"
	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/services/metrics"
	"amlwatch/internal/services/notifier"
	"amlwatch/internal/utils"

	"github.com/rs/zerolog"
)

type PipelineConfig struct {
	Settings        *config.Settings
	Exemptions      ExemptionChecker
	Watchlist       WatchlistChecker
	Scorer          RiskScorer
	Threshold       ThresholdChecker
	Profiles        repositories.ProfileRepository
	RawTransactions repositories.RawTransactionRepository
	Cases           repositories.CaseRepository

	// Optional. Without a Background runner no hand-offs are made.
	Background BackgroundRunner
	AIQueue    notifier.AIQueue
	Notifier   ExternalNotifier
	Metrics    metrics.MetricsCollector
	Log        zerolog.Logger
	Now        func() time.Time
}

type Pipeline struct {
	settings   *config.Settings
	exemptions ExemptionChecker
	watchlist  WatchlistChecker
	scorer     RiskScorer
	threshold  ThresholdChecker
	profiles   repositories.ProfileRepository
	raw        repositories.RawTransactionRepository
	cases      repositories.CaseRepository
	background BackgroundRunner
	aiQueue    notifier.AIQueue
	notifier   ExternalNotifier
	metrics    metrics.MetricsCollector
	log        zerolog.Logger
	now        func() time.Time
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.Settings == nil {
		panic("settings are required")
	}
	if cfg.Exemptions == nil {
		panic("exemption checker is required")
	}
	if cfg.Watchlist == nil {
		panic("watchlist checker is required")
	}
	if cfg.Scorer == nil {
		panic("risk scorer is required")
	}
	if cfg.Threshold == nil {
		panic("threshold checker is required")
	}
	if cfg.Profiles == nil || cfg.RawTransactions == nil || cfg.Cases == nil {
		panic("profile, raw transaction and case repositories are required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &metrics.NoopMetricsCollector{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Pipeline{
		settings:   cfg.Settings,
		exemptions: cfg.Exemptions,
		watchlist:  cfg.Watchlist,
		scorer:     cfg.Scorer,
		threshold:  cfg.Threshold,
		profiles:   cfg.Profiles,
		raw:        cfg.RawTransactions,
		cases:      cfg.Cases,
		background: cfg.Background,
		aiQueue:    cfg.AIQueue,
		notifier:   cfg.Notifier,
		metrics:    cfg.Metrics,
		log:        cfg.Log,
		now:        cfg.Now,
	}
}

// Process evaluates one transaction. It never returns nil and never
// panics: lookup and persistence failures are recorded as step errors and
// processing continues in degraded form, while anything unexpected yields
// Success=false.
func (p *Pipeline) Process(ctx context.Context, req *models.SuspiciousTransactionRequest) (result *ProcessResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("transaction processing panicked")
			result = &ProcessResult{
				Success: false,
				Status:  StatusFailed,
				Error:   fmt.Sprintf("%v: %v", ErrPanic, r),
			}
		}
		p.metrics.RecordProcessed(result.Status, time.Since(start))
	}()

	if req == nil {
		return &ProcessResult{Success: false, Status: StatusFailed, Error: ErrNilRequest.Error()}
	}

	flags := p.settings.Flags()
	if !flags.MonitoringEnabled {
		return &ProcessResult{
			Success: true,
			Status:  StatusMonitoringDisabled,
			Message: "transaction monitoring is disabled",
		}
	}

	return p.process(ctx, req, flags)
}

func (p *Pipeline) process(ctx context.Context, req *models.SuspiciousTransactionRequest, flags config.Flags) *ProcessResult {
	tx := &req.CurrentTransaction
	log := p.log.With().Str("case_number", req.CaseNumber).Str("acct_no", tx.AcctNo).Str("tran_id", tx.TranID).Logger()
	result := &ProcessResult{Success: true, Status: StatusProcessed, CaseNumber: req.CaseNumber}

	exempt, err := p.exemptions.IsExempt(ctx, tx.AcctNo)
	if err != nil {
		p.stepFailed(log, result, StepExemption, err)
	} else if exempt {
		log.Info().Msg("account exempt from monitoring")
		return &ProcessResult{
			Success:    true,
			Status:     StatusExempted,
			Message:    fmt.Sprintf("account %s is exempt from monitoring", tx.AcctNo),
			CaseNumber: req.CaseNumber,
		}
	}

	watchReason, err := p.watchlist.ReasonIfWatchlisted(ctx, tx.AcctNo)
	if err != nil {
		p.stepFailed(log, result, StepWatchlist, err)
		watchReason = nil
	}

	risk := p.scorer.Evaluate(tx, req.CaseNumber)
	result.RiskProfile = &risk
	p.metrics.RecordRiskLevel(string(risk.RiskLevel))
	if risk.Error != "" {
		log.Warn().Str("error", risk.Error).Msg("risk scoring degraded")
	}

	profile, columns := buildProfile(tx, risk)
	if id, err := p.profiles.Upsert(ctx, profile, columns); err != nil {
		p.stepFailed(log, result, StepProfile, err)
	} else {
		result.CustomerProfileID = &id
	}

	if err := p.raw.Create(ctx, buildRawTransaction(tx, risk, req.CaseNumber)); err != nil {
		p.stepFailed(log, result, StepRawTransaction, err)
	}

	breached, limitReason, err := p.threshold.Check(ctx, tx)
	if err != nil {
		p.stepFailed(log, result, StepThreshold, err)
		breached, limitReason = false, nil
	}

	result.IsSuspicious = breached || watchReason != nil
	result.FlaggingReason = combineReasons(limitReason, watchReason)

	if result.IsSuspicious || risk.RiskScore > HighRiskCaseScore {
		reason := fmt.Sprintf("High risk score: %s", utils.FormatAmount(risk.RiskScore))
		if result.FlaggingReason != nil {
			reason = *result.FlaggingReason
		}
		p.createCase(ctx, log, result, req, risk, reason, flags)
	}

	if flags.ExternalSyncEnabled {
		p.syncExternal(log, tx)
	}

	log.Info().
		Float64("risk_score", risk.RiskScore).
		Str("risk_level", string(risk.RiskLevel)).
		Bool("suspicious", result.IsSuspicious).
		Bool("case_created", result.CaseCreated).
		Int("step_errors", len(result.StepErrors)).
		Msg("transaction processed")
	return result
}

func (p *Pipeline) createCase(
	ctx context.Context,
	log zerolog.Logger,
	result *ProcessResult,
	req *models.SuspiciousTransactionRequest,
	risk models.RiskProfile,
	reason string,
	flags config.Flags,
) {
	c := buildCase(req, risk, reason)
	err := p.cases.Create(ctx, c)
	if err == nil {
		result.CaseCreated = true
		p.metrics.RecordCaseCreated()
		log.Info().Str("reason", reason).Msg("suspicious case created")
		if flags.AIAnalysisEnabled {
			p.queueAIAnalysis(log, req.CaseNumber, &req.CurrentTransaction)
		}
		return
	}

	if errors.Is(err, repositories.ErrDuplicateCase) {
		existing, findErr := p.cases.FindByNumber(ctx, req.CaseNumber)
		if findErr == nil && existing.TransactionID == req.CurrentTransaction.TranID {
			log.Info().Msg("case already recorded for this transaction")
			result.CaseDuplicate = true
			return
		}
	}
	p.stepFailed(log, result, StepCase, err)
}

func (p *Pipeline) queueAIAnalysis(log zerolog.Logger, caseNumber string, tx *models.TransactionData) {
	if p.background == nil || p.aiQueue == nil {
		log.Warn().Msg("ai analysis enabled but no queue configured")
		return
	}
	msg := notifier.NewAIAnalysisMessage(caseNumber, tx, p.now())
	p.background.Submit(JobAIAnalysis, func(ctx context.Context) error {
		return p.aiQueue.Publish(ctx, msg)
	})
}

func (p *Pipeline) syncExternal(log zerolog.Logger, tx *models.TransactionData) {
	if p.background == nil || p.notifier == nil {
		log.Warn().Msg("external sync enabled but no notifier configured")
		return
	}
	snapshot := *tx
	p.background.Submit(JobExternalSync, func(ctx context.Context) error {
		return p.notifier.Notify(ctx, &snapshot)
	})
}

func (p *Pipeline) stepFailed(log zerolog.Logger, result *ProcessResult, step string, err error) {
	log.Error().Err(err).Str("step", step).Msg("pipeline step failed")
	p.metrics.RecordStepError(step)
	code := ""
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		code = de.Code
	}
	result.addStepError(step, code, err)
}

// combineReasons joins the limit reason and the watchlist reason.
func combineReasons(limitReason, watchReason *string) *string {
	switch {
	case limitReason != nil && watchReason != nil:
		s := *limitReason + "; Watchlist: " + *watchReason
		return &s
	case limitReason != nil:
		s := *limitReason
		return &s
	case watchReason != nil:
		s := "Watchlist: " + *watchReason
		return &s
	default:
		return nil
	}
}
