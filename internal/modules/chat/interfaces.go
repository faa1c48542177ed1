package chat

import (
	"context"

	"trainerhub/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	List(ctx context.Context, bookingID, afterID int64, limit int) ([]domain.Message, error)
	MarkRead(ctx context.Context, bookingID, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Pusher delivers realtime events. *Hub implements it.
type Pusher interface {
	SendToUser(userID int64, ev Event) bool
}
