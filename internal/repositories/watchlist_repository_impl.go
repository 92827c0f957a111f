package repositories

import (
	"context"
	"errors"
	"fmt"

	"amlwatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Upsert(ctx context.Context, w *models.Watchlist) error {
	w.IsActive = true
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"account_name", "reason_for_monitoring", "category", "added_by", "is_active", "updated_at",
		}),
	}).Create(w).Error
	if err != nil {
		return fmt.Errorf("failed to upsert watchlist entry: %w", err)
	}
	var stored models.Watchlist
	if err := r.db.WithContext(ctx).Where("account_number = ?", w.AccountNumber).First(&stored).Error; err != nil {
		return fmt.Errorf("failed to reload entry: %w", err)
	}
	*w = stored
	return nil
}

func (r *watchlistRepository) FindActive(ctx context.Context, acctNo string) (*models.Watchlist, error) {
	var w models.Watchlist
	err := r.db.WithContext(ctx).
		Where("account_number = ? AND is_active = ?", acctNo, true).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchlistNotFound
		}
		return nil, fmt.Errorf("failed to get watchlist entry: %w", err)
	}
	return &w, nil
}

func (r *watchlistRepository) List(ctx context.Context, filter ListFilter) ([]models.Watchlist, error) {
	q := r.db.WithContext(ctx).Model(&models.Watchlist{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var entries []models.Watchlist
	if err := q.Order("id ASC").Offset(filter.Offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}

func (r *watchlistRepository) Deactivate(ctx context.Context, acctNo string) error {
	result := r.db.WithContext(ctx).Model(&models.Watchlist{}).
		Where("account_number = ?", acctNo).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate watchlist entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWatchlistNotFound
	}
	return nil
}
