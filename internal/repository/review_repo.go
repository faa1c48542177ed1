package repository

import (
	"context"
	"math"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type ReviewFilter struct {
	TrainerID     int64
	IncludeHidden bool
	HiddenOnly    bool
	Page          Page
}

// Create stores the review and refreshes the trainer's rating in the same transaction.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client").Create(rv).Error; err != nil {
			return err
		}
		return recomputeRating(tx, rv.TrainerID)
	})
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("booking_id = ?", bookingID).Count(&cnt).Error
	return cnt > 0, err
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter) ([]domain.Review, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Review{})
		if f.TrainerID != 0 {
			q = q.Where("trainer_id = ?", f.TrainerID)
		}
		switch {
		case f.HiddenOnly:
			q = q.Where("is_hidden = ?", true)
		case !f.IncludeHidden:
			q = q.Where("is_hidden = ?", false)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.Review
	err := base().Preload("Client").Order("created_at DESC").Order("id DESC").Scopes(paginate(f.Page)).Find(&rows).Error
	return rows, total, err
}

func (r *ReviewRepository) SetHidden(ctx context.Context, id int64, hidden bool) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rv, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&rv).Update("is_hidden", hidden).Error; err != nil {
			return err
		}
		return recomputeRating(tx, rv.TrainerID)
	})
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

type ratingRow struct {
	Cnt int64
	Avg float64
}

func recomputeRating(tx *gorm.DB, trainerID int64) error {
	var row ratingRow
	err := tx.Model(&domain.Review{}).
		Select("COUNT(1) AS cnt, COALESCE(AVG(rating), 0) AS avg").
		Where("trainer_id = ? AND is_hidden = ?", trainerID, false).
		Scan(&row).Error
	if err != nil {
		return err
	}
	return tx.Model(&domain.Trainer{}).Where("id = ?", trainerID).Updates(map[string]any{
		"rating_avg":   math.Round(row.Avg*100) / 100,
		"rating_count": row.Cnt,
	}).Error
}
