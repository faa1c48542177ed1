package payout

import (
	"context"
	"time"

	"trainerhub/internal/domain"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/repository"
)

type PayoutRepository interface {
	List(ctx context.Context, f repository.PayoutFilter) ([]domain.TrainerPayout, int64, error)
	AllForTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerPayout, error)
	Pending(ctx context.Context, ids []int64) ([]domain.TrainerPayout, error)
	CreateBatch(ctx context.Context, batch *domain.PayoutBatch, payoutIDs []int64) error
	MarkBatchPaid(ctx context.Context, batchID int64, reference string, paidAt time.Time) error
	GetBatch(ctx context.Context, id int64) (*domain.PayoutBatch, error)
	ListBatches(ctx context.Context, p repository.Page) ([]domain.PayoutBatch, int64, error)
}

type TrainerLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error)
}

type SettingsReader interface {
	Current(ctx context.Context) (settings.Settings, error)
}
