package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/ledger"
	"trainerhub/internal/repository"
)

type Service struct {
	bookings BookingRepository
	trainers TrainerRepository
	settings SettingsReader
	now      func() time.Time
}

func NewService(bookings BookingRepository, trainers TrainerRepository, settings SettingsReader) *Service {
	return &Service{
		bookings: bookings,
		trainers: trainers,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create books one pricing row of an approved trainer. The end time follows
// from the pricing duration and the money split is fixed at creation time.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateBookingRequest) (*domain.Booking, error) {
	trainer, err := s.trainers.GetByID(ctx, req.TrainerID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.Bookable() {
		return nil, ErrTrainerNotBookable
	}
	if trainer.UserID == clientID {
		return nil, ErrForbidden
	}

	pricing, err := s.trainers.GetPricing(ctx, req.PricingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrPricingUnavailable
		}
		return nil, err
	}
	if pricing.TrainerID != trainer.ID || !pricing.Active {
		return nil, ErrPricingUnavailable
	}

	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	start := req.StartTime.UTC().Truncate(time.Minute)
	if start.Before(s.now().Add(cfg.BookingLead())) {
		return nil, ErrStartTooSoon
	}

	shares, err := ledger.Split(ledger.PackagePrice(pricing), cfg.CommissionRate)
	if err != nil {
		return nil, err
	}

	pricingID := pricing.ID
	b := &domain.Booking{
		ClientID:         clientID,
		TrainerID:        trainer.ID,
		PricingID:        &pricingID,
		StartTime:        start,
		EndTime:          start.Add(time.Duration(pricing.DurationMinutes) * time.Minute),
		Sessions:         pricing.Sessions,
		TotalPrice:       shares.Gross,
		CommissionRate:   shares.Rate,
		CommissionAmount: shares.Commission,
		TrainerNet:       shares.Net,
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentUnpaid,
		Notes:            strings.TrimSpace(req.Notes),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return b, nil
}

// ListMine lists the caller's bookings: clients see their own, trainers the
// ones assigned to them, admins everything.
func (s *Service) ListMine(ctx context.Context, actor Actor, q ListQuery) ([]domain.Booking, int64, error) {
	f := repository.BookingFilter{Page: repository.NewPage(q.Page, q.Limit)}
	if q.Status != "" {
		st := domain.BookingStatus(q.Status)
		if !st.Valid() {
			return nil, 0, ErrValidation
		}
		f.Status = st
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleTrainer:
		t, err := s.trainers.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if database.IsNotFound(err) {
				return []domain.Booking{}, 0, nil
			}
			return nil, 0, err
		}
		f.TrainerID = t.ID
	default:
		f.ClientID = actor.UserID
	}
	return s.bookings.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, bookingID int64, actor Actor) (*domain.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isClient(b, actor) && !isTrainer(b, actor) {
		return nil, ErrForbidden
	}
	return b, nil
}

// Transition applies a status change on behalf of actor.
func (s *Service) Transition(ctx context.Context, bookingID int64, actor Actor, req TransitionRequest) (*domain.Booking, error) {
	target := domain.BookingStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !target.Valid() {
		return nil, ErrValidation
	}
	reason := strings.TrimSpace(req.Reason)

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.allowed(b, actor, target) {
		return nil, ErrForbidden
	}
	if !b.Status.CanTransition(target) {
		return nil, ErrInvalidStatusTransition
	}

	switch target {
	case domain.BookingCompleted:
		// Payouts only exist for money actually collected.
		if b.PaymentStatus != domain.PaymentPaid {
			return nil, ErrNotPaid
		}
		payout := ledger.PayoutFor(b)
		err = s.bookings.Complete(ctx, b.ID, b.Status, &payout)
	case domain.BookingCancelled:
		if reason == "" {
			return nil, ErrReasonRequired
		}
		err = s.bookings.UpdateStatus(ctx, b.ID, b.Status, target, map[string]any{
			"cancellation_reason": reason,
			"cancelled_at":        s.now(),
		})
	default:
		err = s.bookings.UpdateStatus(ctx, b.ID, b.Status, target, nil)
	}
	if err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}

	return s.load(ctx, b.ID)
}

// allowed reports whether actor may move b to target. Admins may force any
// legal transition.
func (s *Service) allowed(b *domain.Booking, actor Actor, target domain.BookingStatus) bool {
	if actor.IsAdmin() {
		return true
	}
	switch target {
	case domain.BookingAssigned, domain.BookingDelivering, domain.BookingDelivered:
		return isTrainer(b, actor)
	case domain.BookingCompleted:
		return isClient(b, actor)
	case domain.BookingCancelled:
		return isClient(b, actor) || isTrainer(b, actor)
	}
	return false
}

func isClient(b *domain.Booking, actor Actor) bool {
	return b.ClientID == actor.UserID
}

func isTrainer(b *domain.Booking, actor Actor) bool {
	return b.Trainer != nil && b.Trainer.UserID == actor.UserID
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Availability returns the free windows of a trainer on a UTC date: the weekly
// slots for that weekday minus active bookings.
func (s *Service) Availability(ctx context.Context, trainerID int64, dateStr string) (*AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.Bookable() {
		return nil, ErrTrainerNotBookable
	}

	slots, err := s.trainers.ListAvailability(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookings.Busy(ctx, trainerID, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	busy := make([]TimeSlot, 0, len(rows))
	for _, b := range rows {
		busy = append(busy, TimeSlot{Start: b.StartTime.UTC(), End: b.EndTime.UTC()})
	}

	free := make([]TimeSlot, 0)
	for _, slot := range slots {
		if slot.Weekday != int(day.Weekday()) {
			continue
		}
		open, close, ok := slotBounds(day, slot)
		if !ok {
			continue
		}
		window := append([]TimeSlot(nil), busy...)
		free = append(free, subtractBusy(open, close, window)...)
	}

	return &AvailabilityResponse{
		TrainerID: trainerID,
		Date:      day.Format("2006-01-02"),
		Free:      free,
		Busy:      busy,
	}, nil
}

func slotBounds(day time.Time, slot domain.AvailabilitySlot) (time.Time, time.Time, bool) {
	openT, err := time.Parse("15:04", slot.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closeT, err := time.Parse("15:04", slot.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	open := time.Date(day.Year(), day.Month(), day.Day(), openT.Hour(), openT.Minute(), 0, 0, time.UTC)
	close := time.Date(day.Year(), day.Month(), day.Day(), closeT.Hour(), closeT.Minute(), 0, 0, time.UTC)
	return open, close, close.After(open)
}

func subtractBusy(open, close time.Time, busy []TimeSlot) []TimeSlot {
	if len(busy) == 0 {
		return []TimeSlot{{Start: open, End: close}}
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	merged := make([]TimeSlot, 0, len(busy))
	for _, s := range busy {
		if !s.End.After(open) || !s.Start.Before(close) {
			continue
		}
		if s.Start.Before(open) {
			s.Start = open
		}
		if s.End.After(close) {
			s.End = close
		}

		if len(merged) == 0 {
			merged = append(merged, s)
			continue
		}
		last := merged[len(merged)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
				merged[len(merged)-1] = last
			}
		} else {
			merged = append(merged, s)
		}
	}

	cur := open
	out := make([]TimeSlot, 0)
	for _, b := range merged {
		if b.Start.After(cur) {
			out = append(out, TimeSlot{Start: cur, End: b.Start})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(close) {
			break
		}
	}
	if cur.Before(close) {
		out = append(out, TimeSlot{Start: cur, End: close})
	}
	return out
}
