package review

import (
	"context"
	"strings"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
}

func NewService(reviews ReviewRepository, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create stores the client's review of a completed booking. The trainer's
// rating is recomputed by the repository in the same transaction.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateReviewRequest) (*domain.Review, error) {
	if clientID <= 0 || req.BookingID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.ClientID != clientID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrReviewNotAllowed
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		BookingID: b.ID,
		ClientID:  clientID,
		TrainerID: b.TrainerID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListForTrainer(ctx context.Context, trainerID int64, page, limit int) ([]domain.Review, int64, error) {
	if trainerID <= 0 {
		return nil, 0, ErrInvalidRequest
	}
	return s.reviews.List(ctx, repository.ReviewFilter{
		TrainerID: trainerID,
		Page:      repository.NewPage(page, limit),
	})
}

// ListForModeration includes hidden reviews; hiddenOnly narrows to them.
func (s *Service) ListForModeration(ctx context.Context, hiddenOnly bool, page, limit int) ([]domain.Review, int64, error) {
	return s.reviews.List(ctx, repository.ReviewFilter{
		IncludeHidden: true,
		HiddenOnly:    hiddenOnly,
		Page:          repository.NewPage(page, limit),
	})
}

func (s *Service) SetHidden(ctx context.Context, reviewID int64, hidden bool) (*domain.Review, error) {
	rv, err := s.reviews.SetHidden(ctx, reviewID, hidden)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rv.IsHidden = hidden
	return rv, nil
}
