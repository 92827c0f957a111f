package repositories

import (
	"context"
	"errors"
	"fmt"

	"amlwatch/internal/models"

	"gorm.io/gorm"
)

const defaultListLimit = 100

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(ctx context.Context, c *models.SuspiciousCase) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCase.Wrap(err)
		}
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (r *caseRepository) FindByNumber(ctx context.Context, caseNumber string) (*models.SuspiciousCase, error) {
	var c models.SuspiciousCase
	if err := r.db.WithContext(ctx).Where("case_number = ?", caseNumber).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return &c, nil
}

func (r *caseRepository) List(ctx context.Context, filter CaseFilter) ([]models.SuspiciousCase, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.SuspiciousCase{})
	if filter.AccountNumber != "" {
		q = q.Where("account_number = ?", filter.AccountNumber)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("transaction_date <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var cases []models.SuspiciousCase
	err := q.Order("created_at DESC").Order("id DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&cases).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, total, nil
}

func (r *caseRepository) UpdateStatus(ctx context.Context, caseNumber string, status models.CaseStatus) (*models.SuspiciousCase, error) {
	result := r.db.WithContext(ctx).Model(&models.SuspiciousCase{}).
		Where("case_number = ?", caseNumber).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update case status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCaseNotFound
	}
	return r.FindByNumber(ctx, caseNumber)
}

type rawTransactionRepository struct {
	db *gorm.DB
}

func NewRawTransactionRepository(db *gorm.DB) RawTransactionRepository {
	return &rawTransactionRepository{db: db}
}

func (r *rawTransactionRepository) Create(ctx context.Context, tx *models.RawTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to store raw transaction: %w", err)
	}
	return nil
}

func (r *rawTransactionRepository) ListByAccount(ctx context.Context, acctNo string, limit int) ([]models.RawTransaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var txs []models.RawTransaction
	err := r.db.WithContext(ctx).
		Where("acct_no = ?", acctNo).
		Order("id DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list raw transactions: %w", err)
	}
	return txs, nil
}
