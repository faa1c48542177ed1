package trainer

import (
	"context"

	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error)
	List(ctx context.Context, f repository.TrainerFilter) ([]domain.Trainer, int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error

	ListPricing(ctx context.Context, trainerID int64, activeOnly bool) ([]domain.Pricing, error)
	GetPricing(ctx context.Context, id int64) (*domain.Pricing, error)
	CreatePricing(ctx context.Context, p *domain.Pricing) error
	SavePricing(ctx context.Context, p *domain.Pricing) error
	DeactivatePricing(ctx context.Context, id int64) error

	ListAvailability(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error)
	ReplaceAvailability(ctx context.Context, trainerID int64, slots []domain.AvailabilitySlot) error
}

type ReviewLister interface {
	List(ctx context.Context, f repository.ReviewFilter) ([]domain.Review, int64, error)
}
