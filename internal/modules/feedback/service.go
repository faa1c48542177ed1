package feedback

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type Service struct {
	links    FeedbackRepository
	bookings BookingReader
	trainers TrainerLookup
	settings SettingsReader
	now      func() time.Time
}

func NewService(links FeedbackRepository, bookings BookingReader, trainers TrainerLookup, settings SettingsReader) *Service {
	return &Service{
		links:    links,
		bookings: bookings,
		trainers: trainers,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateLink issues a one-time link for a completed booking. Only the
// booking's trainer or an admin may do it.
func (s *Service) CreateLink(ctx context.Context, userID int64, isAdmin bool, bookingID int64) (*domain.FeedbackLink, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !isAdmin && (b.Trainer == nil || b.Trainer.UserID != userID) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}

	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	l := &domain.FeedbackLink{
		BookingID: b.ID,
		TrainerID: b.TrainerID,
		Token:     uuid.NewString(),
		CreatedBy: userID,
		ExpiresAt: s.now().Add(cfg.FeedbackLinkTTL()),
	}
	if err := s.links.CreateLink(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) usableLink(ctx context.Context, token string) (*domain.FeedbackLink, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrNotFound
	}
	l, err := s.links.GetLinkByToken(ctx, token)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.UsedAt != nil {
		return nil, ErrLinkUsed
	}
	if l.Expired(s.now()) {
		return nil, ErrLinkExpired
	}
	return l, nil
}

func (s *Service) Resolve(ctx context.Context, token string) (*LinkInfo, error) {
	l, err := s.usableLink(ctx, token)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, l.BookingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	info := &LinkInfo{SessionDate: b.StartTime, ExpiresAt: l.ExpiresAt}
	if b.Trainer != nil && b.Trainer.Profile != nil {
		info.TrainerName = b.Trainer.Profile.FullName
	}
	return info, nil
}

func (s *Service) Submit(ctx context.Context, token string, req SubmitRequest) (*domain.FeedbackResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}
	l, err := s.usableLink(ctx, token)
	if err != nil {
		return nil, err
	}

	resp := &domain.FeedbackResponse{
		BookingID:      l.BookingID,
		TrainerID:      l.TrainerID,
		RespondentName: strings.TrimSpace(req.Name),
		Rating:         req.Rating,
		Comment:        strings.TrimSpace(req.Comment),
	}
	if err := s.links.Submit(ctx, l.ID, resp, s.now()); err != nil {
		if errors.Is(err, repository.ErrStale) || database.IsUniqueViolation(err) {
			return nil, ErrLinkUsed
		}
		return nil, err
	}
	return resp, nil
}

func (s *Service) ListResponses(ctx context.Context, trainerUserID int64, page, limit int) (*ResponsesPage, error) {
	t, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	rows, total, err := s.links.ListResponses(ctx, t.ID, repository.NewPage(page, limit))
	if err != nil {
		return nil, err
	}
	avg, err := s.links.AverageRating(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return &ResponsesPage{Responses: rows, Total: total, AverageRating: math.Round(avg*100) / 100}, nil
}

// PurgeExpired removes links that expired unused.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.links.PurgeExpired(ctx, s.now())
}
