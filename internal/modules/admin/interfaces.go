package admin

import (
	"context"
	"time"

	"trainerhub/internal/domain"
	"trainerhub/internal/ledger"
	"trainerhub/internal/modules/booking"
	"trainerhub/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
	SetBanned(ctx context.Context, id int64, banned bool, reason string) error
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type TrainerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	List(ctx context.Context, f repository.TrainerFilter) ([]domain.Trainer, int64, error)
	SetStatus(ctx context.Context, id int64, from []domain.TrainerStatus, to domain.TrainerStatus, reason string, adminID int64) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type BookingRepository interface {
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// BookingTransitioner is the booking service; admins go through the same
// status flow as everybody else.
type BookingTransitioner interface {
	Transition(ctx context.Context, bookingID int64, actor booking.Actor, req booking.TransitionRequest) (*domain.Booking, error)
}

type RevenueReporter interface {
	Revenue(ctx context.Context, from, to time.Time) (*ledger.Report, error)
}
