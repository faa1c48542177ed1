package review

import (
	"context"

	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	List(ctx context.Context, f repository.ReviewFilter) ([]domain.Review, int64, error)
	SetHidden(ctx context.Context, id int64, hidden bool) (*domain.Review, error)
}

type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
