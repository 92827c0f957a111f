package repositories

import (
	"context"
	"errors"
	"fmt"

	"amlwatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.CustomerProfile, columns []string) (uint, error) {
	if len(columns) == 0 {
		columns = []string{"updated_at"}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "acct_no"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(profile).Error
	if err != nil {
		return 0, fmt.Errorf("failed to upsert profile: %w", err)
	}

	// The id reported by the driver on the update branch is not reliable
	// across dialects, so read it back.
	var id uint
	err = r.db.WithContext(ctx).Model(&models.CustomerProfile{}).
		Where("acct_no = ?", profile.AcctNo).
		Pluck("id", &id).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read profile id: %w", err)
	}
	profile.ID = id
	return id, nil
}

func (r *profileRepository) FindByAccount(ctx context.Context, acctNo string) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).Where("acct_no = ?", acctNo).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}
