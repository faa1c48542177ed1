package repository

import (
	"context"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) All(ctx context.Context) ([]domain.PlatformSetting, error) {
	var rows []domain.PlatformSetting
	err := r.db.WithContext(ctx).Order("key").Find(&rows).Error
	return rows, err
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (*domain.PlatformSetting, error) {
	var s domain.PlatformSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert writes all rows in one transaction.
func (r *SettingsRepository) Upsert(ctx context.Context, rows []domain.PlatformSetting) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range rows {
		rows[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		}).Create(&rows).Error
	})
}
