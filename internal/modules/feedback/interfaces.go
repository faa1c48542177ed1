package feedback

import (
	"context"
	"time"

	"trainerhub/internal/domain"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/repository"
)

type FeedbackRepository interface {
	CreateLink(ctx context.Context, l *domain.FeedbackLink) error
	GetLinkByToken(ctx context.Context, token string) (*domain.FeedbackLink, error)
	Submit(ctx context.Context, linkID int64, resp *domain.FeedbackResponse, now time.Time) error
	ListResponses(ctx context.Context, trainerID int64, p repository.Page) ([]domain.FeedbackResponse, int64, error)
	AverageRating(ctx context.Context, trainerID int64) (float64, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type TrainerLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error)
}

type SettingsReader interface {
	Current(ctx context.Context) (settings.Settings, error)
}
