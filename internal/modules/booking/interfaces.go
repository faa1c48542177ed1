package booking

import (
	"context"
	"time"

	"trainerhub/internal/domain"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	Busy(ctx context.Context, trainerID int64, from, to time.Time) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, fields map[string]any) error
	Complete(ctx context.Context, id int64, from domain.BookingStatus, payout *domain.TrainerPayout) error
}

type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error)
	GetPricing(ctx context.Context, id int64) (*domain.Pricing, error)
	ListAvailability(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error)
}

type SettingsReader interface {
	Current(ctx context.Context) (settings.Settings, error)
}
