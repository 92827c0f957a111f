package repositories

import (
	"context"
	"errors"
	"fmt"

	"amlwatch/internal/models"

	"gorm.io/gorm"
)

type limitRepository struct {
	db *gorm.DB
}

func NewLimitRepository(db *gorm.DB) LimitRepository {
	return &limitRepository{db: db}
}

// Upsert keys on (channel, type). There is no unique index on the pair, so
// the read-then-write runs inside a transaction.
func (r *limitRepository) Upsert(ctx context.Context, l *models.TransactionLimit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.TransactionLimit
		err := tx.Where("channel = ? AND type = ?", l.Channel, l.Type).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(l).Error; err != nil {
				return fmt.Errorf("failed to create limit: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to get limit: %w", err)
		}

		l.ID = existing.ID
		l.CreatedAt = existing.CreatedAt
		if err := tx.Save(l).Error; err != nil {
			return fmt.Errorf("failed to update limit: %w", err)
		}
		return nil
	})
}

func (r *limitRepository) FindActive(ctx context.Context, channel, tranType string) (*models.TransactionLimit, error) {
	var l models.TransactionLimit
	err := r.db.WithContext(ctx).
		Where("channel = ? AND type = ? AND is_active = ?", channel, tranType, true).
		Order("id DESC").
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get limit: %w", err)
	}
	return &l, nil
}

func (r *limitRepository) List(ctx context.Context, filter LimitFilter) ([]models.TransactionLimit, error) {
	q := r.db.WithContext(ctx).Model(&models.TransactionLimit{})
	if filter.Channel != "" {
		q = q.Where("channel = ?", filter.Channel)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	var limits []models.TransactionLimit
	if err := q.Order("channel ASC").Order("type ASC").Find(&limits).Error; err != nil {
		return nil, fmt.Errorf("failed to list limits: %w", err)
	}
	return limits, nil
}
