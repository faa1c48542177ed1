package repository

import (
	"context"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

type PayoutFilter struct {
	TrainerID int64
	Status    domain.PayoutStatus
	Page      Page
}

func (r *PayoutRepository) List(ctx context.Context, f PayoutFilter) ([]domain.TrainerPayout, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.TrainerPayout{})
		if f.TrainerID != 0 {
			q = q.Where("trainer_id = ?", f.TrainerID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.TrainerPayout
	err := base().Order("created_at DESC").Order("id DESC").Scopes(paginate(f.Page)).Find(&rows).Error
	return rows, total, err
}

// AllForTrainer returns every payout of the trainer, for summaries.
func (r *PayoutRepository) AllForTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerPayout, error) {
	var rows []domain.TrainerPayout
	err := r.db.WithContext(ctx).Where("trainer_id = ?", trainerID).Find(&rows).Error
	return rows, err
}

// Pending returns pending payouts, optionally restricted to ids.
func (r *PayoutRepository) Pending(ctx context.Context, ids []int64) ([]domain.TrainerPayout, error) {
	q := r.db.WithContext(ctx).Where("status = ?", domain.PayoutPending)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	var rows []domain.TrainerPayout
	err := q.Order("trainer_id").Order("id").Find(&rows).Error
	return rows, err
}

// CreateBatch stores the batch and moves the given pending payouts into it.
// ErrStale is returned if any payout is no longer pending.
func (r *PayoutRepository) CreateBatch(ctx context.Context, batch *domain.PayoutBatch, payoutIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []domain.TrainerPayout
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND status = ?", payoutIDs, domain.PayoutPending).
			Find(&locked).Error
		if err != nil {
			return err
		}
		if len(locked) != len(payoutIDs) {
			return ErrStale
		}

		if err := tx.Omit("Payouts").Create(batch).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.TrainerPayout{}).
			Where("id IN ? AND status = ?", payoutIDs, domain.PayoutPending).
			Updates(map[string]any{"status": domain.PayoutBatched, "batch_id": batch.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(payoutIDs)) {
			return ErrStale
		}
		return nil
	})
}

func (r *PayoutRepository) MarkBatchPaid(ctx context.Context, batchID int64, reference string, paidAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := casUpdate(tx, &domain.PayoutBatch{}, map[string]any{
			"status":    domain.BatchPaid,
			"reference": reference,
			"paid_at":   paidAt,
		}, "id = ? AND status = ?", batchID, domain.BatchOpen)
		if err != nil {
			return err
		}
		return tx.Model(&domain.TrainerPayout{}).
			Where("batch_id = ? AND status = ?", batchID, domain.PayoutBatched).
			Updates(map[string]any{"status": domain.PayoutPaid, "paid_at": paidAt}).Error
	})
}

func (r *PayoutRepository) GetBatch(ctx context.Context, id int64) (*domain.PayoutBatch, error) {
	var b domain.PayoutBatch
	err := r.db.WithContext(ctx).
		Preload("Payouts", func(db *gorm.DB) *gorm.DB { return db.Order("trainer_id").Order("id") }).
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PayoutRepository) ListBatches(ctx context.Context, p Page) ([]domain.PayoutBatch, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.PayoutBatch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.PayoutBatch
	err := r.db.WithContext(ctx).Order("id DESC").Scopes(paginate(p)).Find(&rows).Error
	return rows, total, err
}
