package monitoring

import (
	"context"

	"amlwatch/internal/models"
	"amlwatch/internal/services/notifier"
)

// Service runs transactions through the monitoring pipeline.
type Service interface {
	Process(ctx context.Context, req *models.SuspiciousTransactionRequest) *ProcessResult
}

type ExemptionChecker interface {
	IsExempt(ctx context.Context, acctNo string) (bool, error)
}

type WatchlistChecker interface {
	ReasonIfWatchlisted(ctx context.Context, acctNo string) (*string, error)
}

type RiskScorer interface {
	Evaluate(tx *models.TransactionData, caseNumber string) models.RiskProfile
}

type ThresholdChecker interface {
	Check(ctx context.Context, tx *models.TransactionData) (bool, *string, error)
}

// BackgroundRunner accepts best-effort work; notifier.Dispatcher implements it.
type BackgroundRunner interface {
	Submit(kind string, run func(ctx context.Context) error) bool
}

type ExternalNotifier interface {
	Notify(ctx context.Context, tx *models.TransactionData) error
}

var (
	_ BackgroundRunner = (*notifier.Dispatcher)(nil)
	_ ExternalNotifier = (*notifier.ExternalNotifier)(nil)
)
