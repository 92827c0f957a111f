package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amlwatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type exemptionRepository struct {
	db *gorm.DB
}

func NewExemptionRepository(db *gorm.DB) ExemptionRepository {
	return &exemptionRepository{db: db}
}

func (r *exemptionRepository) Upsert(ctx context.Context, e *models.TransactionExemption) error {
	e.IsActive = true
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"account_name", "exemption_reason", "exempted_by", "is_active", "expiry_date", "updated_at",
		}),
	}).Create(e).Error
	if err != nil {
		return fmt.Errorf("failed to upsert exemption: %w", err)
	}
	var stored models.TransactionExemption
	if err := r.db.WithContext(ctx).Where("account_number = ?", e.AccountNumber).First(&stored).Error; err != nil {
		return fmt.Errorf("failed to reload entry: %w", err)
	}
	*e = stored
	return nil
}

func (r *exemptionRepository) FindByAccount(ctx context.Context, acctNo string) (*models.TransactionExemption, error) {
	var e models.TransactionExemption
	if err := r.db.WithContext(ctx).Where("account_number = ?", acctNo).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExemptionNotFound
		}
		return nil, fmt.Errorf("failed to get exemption: %w", err)
	}
	return &e, nil
}

func (r *exemptionRepository) List(ctx context.Context, filter ListFilter) ([]models.TransactionExemption, error) {
	q := r.db.WithContext(ctx).Model(&models.TransactionExemption{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var entries []models.TransactionExemption
	if err := q.Order("id ASC").Offset(filter.Offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list exemptions: %w", err)
	}
	return entries, nil
}

func (r *exemptionRepository) Deactivate(ctx context.Context, acctNo string) error {
	result := r.db.WithContext(ctx).Model(&models.TransactionExemption{}).
		Where("account_number = ?", acctNo).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate exemption: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExemptionNotFound
	}
	return nil
}

func (r *exemptionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.TransactionExemption{}).
		Where("is_active = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire exemptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
