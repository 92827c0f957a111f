package repositories

import (
	"context"
	"time"

	"amlwatch/internal/models"
)

// CaseFilter narrows a case listing. Zero values mean "any".
type CaseFilter struct {
	AccountNumber string
	Status        models.CaseStatus
	From          *time.Time
	To            *time.Time
	Offset        int
	Limit         int
}

// CaseRepository defines the suspicious case store.
type CaseRepository interface {
	// Create inserts a case; a reused case number yields ErrDuplicateCase.
	Create(ctx context.Context, c *models.SuspiciousCase) error

	FindByNumber(ctx context.Context, caseNumber string) (*models.SuspiciousCase, error)

	// List returns matching cases newest first together with the total count.
	List(ctx context.Context, filter CaseFilter) ([]models.SuspiciousCase, int64, error)

	UpdateStatus(ctx context.Context, caseNumber string, status models.CaseStatus) (*models.SuspiciousCase, error)
}

// RawTransactionRepository is the append-only transaction log.
type RawTransactionRepository interface {
	Create(ctx context.Context, tx *models.RawTransaction) error
	ListByAccount(ctx context.Context, acctNo string, limit int) ([]models.RawTransaction, error)
}
