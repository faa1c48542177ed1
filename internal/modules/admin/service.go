package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/modules/booking"
	"trainerhub/internal/repository"
)

const defaultStatsWindow = 30 * 24 * time.Hour

type Service struct {
	users    UserRepository
	trainers TrainerRepository
	bookings BookingRepository
	flow     BookingTransitioner
	reports  RevenueReporter
	now      func() time.Time
}

func NewService(
	users UserRepository,
	trainers TrainerRepository,
	bookings BookingRepository,
	flow BookingTransitioner,
	reports RevenueReporter,
) *Service {
	return &Service{
		users:    users,
		trainers: trainers,
		bookings: bookings,
		flow:     flow,
		reports:  reports,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// -------------------- Trainers --------------------

func (s *Service) ListTrainers(ctx context.Context, status string, page, limit int) ([]domain.Trainer, int64, error) {
	f := repository.TrainerFilter{Sort: repository.SortNewest, Page: repository.NewPage(page, limit)}
	if status != "" {
		st := domain.TrainerStatus(status)
		switch st {
		case domain.TrainerPending, domain.TrainerApproved, domain.TrainerRejected, domain.TrainerSuspended:
		default:
			return nil, 0, ErrValidation
		}
		f.Status = st
	}
	return s.trainers.List(ctx, f)
}

func (s *Service) ApproveTrainer(ctx context.Context, trainerID, adminID int64) (*domain.Trainer, error) {
	return s.setTrainerStatus(ctx, trainerID, adminID,
		[]domain.TrainerStatus{domain.TrainerPending, domain.TrainerRejected, domain.TrainerSuspended},
		domain.TrainerApproved, "")
}

func (s *Service) RejectTrainer(ctx context.Context, trainerID, adminID int64, reason string) (*domain.Trainer, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.setTrainerStatus(ctx, trainerID, adminID,
		[]domain.TrainerStatus{domain.TrainerPending},
		domain.TrainerRejected, reason)
}

func (s *Service) SuspendTrainer(ctx context.Context, trainerID, adminID int64, reason string) (*domain.Trainer, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.setTrainerStatus(ctx, trainerID, adminID,
		[]domain.TrainerStatus{domain.TrainerApproved},
		domain.TrainerSuspended, reason)
}

func (s *Service) setTrainerStatus(ctx context.Context, trainerID, adminID int64, from []domain.TrainerStatus, to domain.TrainerStatus, reason string) (*domain.Trainer, error) {
	if _, err := s.trainers.GetByID(ctx, trainerID); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if err := s.trainers.SetStatus(ctx, trainerID, from, to, reason, adminID); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrInvalidTrainerStatus
		}
		return nil, err
	}
	return s.trainers.GetByID(ctx, trainerID)
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, filter UserListFilter, page, limit int) ([]domain.User, int64, error) {
	f := repository.UserFilter{Banned: filter.Banned, Query: filter.Query, Page: repository.NewPage(page, limit)}
	if filter.Role != "" {
		role := domain.UserRole(filter.Role)
		switch role {
		case domain.RoleClient, domain.RoleTrainer, domain.RoleAdmin:
		default:
			return nil, 0, ErrValidation
		}
		f.Role = role
	}
	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

func (s *Service) BanUser(ctx context.Context, userID int64, reason string) (*domain.User, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Role == domain.RoleAdmin {
		return nil, ErrCannotBanAdmin
	}
	if err := s.users.SetBanned(ctx, userID, true, reason); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *Service) UnbanUser(ctx context.Context, userID int64) (*domain.User, error) {
	if err := s.users.SetBanned(ctx, userID, false, ""); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// -------------------- Bookings --------------------

func (s *Service) ListBookings(ctx context.Context, filter BookingListFilter, page, limit int) ([]domain.Booking, int64, error) {
	f := repository.BookingFilter{
		TrainerID: filter.TrainerID,
		ClientID:  filter.ClientID,
		From:      filter.From,
		To:        filter.To,
		Page:      repository.NewPage(page, limit),
	}
	if filter.Status != "" {
		st := domain.BookingStatus(filter.Status)
		if !st.Valid() {
			return nil, 0, ErrValidation
		}
		f.Status = st
	}
	return s.bookings.List(ctx, f)
}

// ForceTransition moves a booking as admin. The status flow still applies.
func (s *Service) ForceTransition(ctx context.Context, adminID, bookingID int64, req booking.TransitionRequest) (*domain.Booking, error) {
	return s.flow.Transition(ctx, bookingID, booking.Actor{UserID: adminID, Role: domain.RoleAdmin}, req)
}

// -------------------- Statistics --------------------

// Statistics counts users, trainers and bookings and attaches the revenue
// report for [from, to). Zero bounds default to the last 30 days.
func (s *Service) Statistics(ctx context.Context, from, to time.Time) (*StatisticsResponse, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-defaultStatsWindow)
	}
	if !from.Before(to) {
		return nil, ErrValidation
	}

	users, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	trainers, err := s.trainers.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	rep, err := s.reports.Revenue(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		UsersByRole:      users,
		TrainersByStatus: trainers,
		BookingsByStatus: bookings,
		PendingApprovals: trainers[string(domain.TrainerPending)],
		Revenue:          rep,
	}, nil
}
