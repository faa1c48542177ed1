package repository

import (
	"context"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
)

// FeedbackRepository stores one-time feedback links and their responses.
type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateLink(ctx context.Context, l *domain.FeedbackLink) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *FeedbackRepository) GetLinkByToken(ctx context.Context, token string) (*domain.FeedbackLink, error) {
	var l domain.FeedbackLink
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// Submit consumes the link and stores the response. ErrStale means the link was used meanwhile.
func (r *FeedbackRepository) Submit(ctx context.Context, linkID int64, resp *domain.FeedbackResponse, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := casUpdate(tx, &domain.FeedbackLink{}, map[string]any{"used_at": now},
			"id = ? AND used_at IS NULL AND expires_at > ?", linkID, now)
		if err != nil {
			return err
		}
		resp.LinkID = linkID
		return tx.Create(resp).Error
	})
}

func (r *FeedbackRepository) ListResponses(ctx context.Context, trainerID int64, p Page) ([]domain.FeedbackResponse, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.FeedbackResponse{}).Where("trainer_id = ?", trainerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.FeedbackResponse
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").Order("id DESC").
		Scopes(paginate(p)).
		Find(&rows).Error
	return rows, total, err
}

func (r *FeedbackRepository) AverageRating(ctx context.Context, trainerID int64) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&domain.FeedbackResponse{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("trainer_id = ?", trainerID).
		Scan(&avg).Error
	return avg, err
}

// PurgeExpired deletes expired links that were never used.
func (r *FeedbackRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used_at IS NULL AND expires_at <= ?", now).
		Delete(&domain.FeedbackLink{})
	return res.RowsAffected, res.Error
}
