package payment

import (
	"context"
	"time"

	"trainerhub/internal/domain"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByInvoice(ctx context.Context, invoiceID int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	MarkFailed(ctx context.Context, invoiceID int64, rawBody, reason string) error
	MarkPaidIdempotent(ctx context.Context, invoiceID int64, rawBody string, paidAt time.Time) (bool, error)
	Refund(ctx context.Context, bookingID int64) error
}
