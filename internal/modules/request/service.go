package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/ledger"
	"trainerhub/internal/repository"
)

const defaultSessionMinutes = 60

type Service struct {
	requests RequestRepository
	trainers TrainerLookup
	settings SettingsReader
	now      func() time.Time
}

func NewService(requests RequestRepository, trainers TrainerLookup, settings SettingsReader) *Service {
	return &Service{
		requests: requests,
		trainers: trainers,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ---- client side ----

func (s *Service) CreateRequest(ctx context.Context, clientID int64, in CreateRequest) (*domain.TrainingRequest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Budget < 0 {
		return nil, ErrValidation
	}

	req := &domain.TrainingRequest{
		ClientID:    clientID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Specialty:   strings.ToLower(strings.TrimSpace(in.Specialty)),
		City:        strings.TrimSpace(in.City),
		Budget:      ledger.Round2(in.Budget),
		Status:      domain.RequestOpen,
	}
	if in.PreferredStart != nil {
		t := in.PreferredStart.UTC()
		req.PreferredStart = &t
	}
	if err := s.requests.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListMyRequests(ctx context.Context, clientID int64, status string, page, limit int) ([]domain.TrainingRequest, int64, error) {
	f := repository.RequestFilter{ClientID: clientID, Page: repository.NewPage(page, limit)}
	if status != "" {
		st := domain.RequestStatus(status)
		switch st {
		case domain.RequestOpen, domain.RequestFilled, domain.RequestClosed:
		default:
			return nil, 0, ErrValidation
		}
		f.Status = st
	}
	return s.requests.ListRequests(ctx, f)
}

func (s *Service) ownRequest(ctx context.Context, requestID, clientID int64) (*domain.TrainingRequest, error) {
	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.ClientID != clientID {
		return nil, ErrForbidden
	}
	return req, nil
}

// CloseRequest withdraws an open request. Pending applications stay as they are
// and can no longer be accepted.
func (s *Service) CloseRequest(ctx context.Context, requestID, clientID int64) error {
	req, err := s.ownRequest(ctx, requestID, clientID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestOpen {
		return ErrRequestNotOpen
	}
	if err := s.requests.UpdateRequestStatus(ctx, req.ID, domain.RequestOpen, domain.RequestClosed); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return ErrRequestNotOpen
		}
		return err
	}
	return nil
}

func (s *Service) ListApplications(ctx context.Context, requestID, clientID int64) ([]domain.TrainingApplication, error) {
	if _, err := s.ownRequest(ctx, requestID, clientID); err != nil {
		return nil, err
	}
	return s.requests.ListApplications(ctx, requestID)
}

// Accept picks an application. The request is filled, the other pending
// applications rejected and an assigned booking created at the proposed price.
func (s *Service) Accept(ctx context.Context, applicationID, clientID int64, in AcceptRequest) (*domain.Booking, error) {
	app, err := s.requests.GetApplication(ctx, applicationID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	req, err := s.ownRequest(ctx, app.RequestID, clientID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestOpen {
		return nil, ErrRequestNotOpen
	}
	if app.Status != domain.ApplicationPending {
		return nil, ErrApplicationClosed
	}

	trainer, err := s.trainers.GetByID(ctx, app.TrainerID)
	if err != nil {
		return nil, err
	}
	if !trainer.Bookable() {
		return nil, ErrTrainerNotApproved
	}

	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	start := in.StartTime.UTC().Truncate(time.Minute)
	if start.Before(s.now().Add(cfg.BookingLead())) {
		return nil, ErrStartTooSoon
	}
	minutes := in.DurationMinutes
	if minutes <= 0 {
		minutes = defaultSessionMinutes
	}

	shares, err := ledger.Split(app.ProposedPrice, cfg.CommissionRate)
	if err != nil {
		return nil, err
	}

	requestID := req.ID
	b := &domain.Booking{
		ClientID:          clientID,
		TrainerID:         trainer.ID,
		TrainingRequestID: &requestID,
		StartTime:         start,
		EndTime:           start.Add(time.Duration(minutes) * time.Minute),
		Sessions:          1,
		TotalPrice:        shares.Gross,
		CommissionRate:    shares.Rate,
		CommissionAmount:  shares.Commission,
		TrainerNet:        shares.Net,
		Status:            domain.BookingAssigned,
		PaymentStatus:     domain.PaymentUnpaid,
		Notes:             req.Title,
	}

	if err := s.requests.Accept(ctx, app, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return nil, ErrSlotTaken
		case errors.Is(err, repository.ErrStale):
			return nil, ErrApplicationClosed
		}
		return nil, err
	}
	return b, nil
}

// ---- trainer side ----

func (s *Service) approvedTrainer(ctx context.Context, userID int64) (*domain.Trainer, error) {
	t, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrTrainerNotApproved
		}
		return nil, err
	}
	if !t.Bookable() {
		return nil, ErrTrainerNotApproved
	}
	return t, nil
}

func (s *Service) ListOpen(ctx context.Context, userID int64, f OpenFilter) ([]domain.TrainingRequest, int64, error) {
	if _, err := s.approvedTrainer(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.requests.ListRequests(ctx, repository.RequestFilter{
		Status:    domain.RequestOpen,
		Specialty: f.Specialty,
		City:      f.City,
		Page:      repository.NewPage(f.Page, f.Limit),
	})
}

func (s *Service) Apply(ctx context.Context, userID, requestID int64, in ApplyRequest) (*domain.TrainingApplication, error) {
	if in.ProposedPrice <= 0 {
		return nil, ErrValidation
	}
	t, err := s.approvedTrainer(ctx, userID)
	if err != nil {
		return nil, err
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.ClientID == userID {
		return nil, ErrOwnRequest
	}
	if req.Status != domain.RequestOpen {
		return nil, ErrRequestNotOpen
	}

	app := &domain.TrainingApplication{
		RequestID:     req.ID,
		TrainerID:     t.ID,
		Message:       strings.TrimSpace(in.Message),
		ProposedPrice: ledger.Round2(in.ProposedPrice),
		Status:        domain.ApplicationPending,
	}
	if err := s.requests.CreateApplication(ctx, app); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return app, nil
}

func (s *Service) Withdraw(ctx context.Context, userID, applicationID int64) error {
	t, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return ErrForbidden
		}
		return err
	}
	app, err := s.requests.GetApplication(ctx, applicationID)
	if err != nil {
		if database.IsNotFound(err) {
			return ErrApplicationNotFound
		}
		return err
	}
	if app.TrainerID != t.ID {
		return ErrForbidden
	}
	if app.Status != domain.ApplicationPending {
		return ErrApplicationClosed
	}
	if err := s.requests.UpdateApplicationStatus(ctx, app.ID, domain.ApplicationPending, domain.ApplicationWithdrawn); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return ErrApplicationClosed
		}
		return err
	}
	return nil
}

func (s *Service) ListMyApplications(ctx context.Context, userID int64, page, limit int) ([]domain.TrainingApplication, int64, error) {
	t, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return []domain.TrainingApplication{}, 0, nil
		}
		return nil, 0, err
	}
	return s.requests.ListApplicationsByTrainer(ctx, t.ID, repository.NewPage(page, limit))
}
