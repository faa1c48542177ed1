package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trainerhub/internal/domain"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) Busy(ctx context.Context, trainerID int64, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, trainerID, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, fields map[string]any) error {
	args := m.Called(ctx, id, from, to, fields)
	return args.Error(0)
}

func (m *MockBookingRepository) Complete(ctx context.Context, id int64, from domain.BookingStatus, payout *domain.TrainerPayout) error {
	args := m.Called(ctx, id, from, payout)
	return args.Error(0)
}

type MockTrainerRepository struct {
	mock.Mock
}

func (m *MockTrainerRepository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trainer), args.Error(1)
}

func (m *MockTrainerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trainer), args.Error(1)
}

func (m *MockTrainerRepository) GetPricing(ctx context.Context, id int64) (*domain.Pricing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pricing), args.Error(1)
}

func (m *MockTrainerRepository) ListAvailability(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error) {
	args := m.Called(ctx, trainerID)
	return args.Get(0).([]domain.AvailabilitySlot), args.Error(1)
}

type staticSettings settings.Settings

func (s staticSettings) Current(context.Context) (settings.Settings, error) {
	return settings.Settings(s), nil
}

var (
	fixedNow = time.Date(2026, 12, 1, 8, 0, 0, 0, time.UTC)
	cfg      = staticSettings(settings.Defaults(0.15))
)

func newService(b *MockBookingRepository, t *MockTrainerRepository) *Service {
	s := NewService(b, t, cfg)
	s.now = func() time.Time { return fixedNow }
	return s
}

func approvedTrainer() *domain.Trainer {
	return &domain.Trainer{ID: 5, UserID: 50, Status: domain.TrainerApproved}
}

func TestCreate_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	trainers := new(MockTrainerRepository)
	svc := newService(bookings, trainers)

	trainers.On("GetByID", mock.Anything, int64(5)).Return(approvedTrainer(), nil)
	trainers.On("GetPricing", mock.Anything, int64(7)).Return(&domain.Pricing{
		ID: 7, TrainerID: 5, Sessions: 1, DurationMinutes: 90, Price: 33.33, Active: true,
	}, nil)
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	start := fixedNow.Add(24 * time.Hour)
	b, err := svc.Create(context.Background(), 11, CreateBookingRequest{TrainerID: 5, PricingID: 7, StartTime: start})

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, start.Add(90*time.Minute), b.EndTime)
	assert.Equal(t, 33.33, b.TotalPrice)
	assert.Equal(t, 5.0, b.CommissionAmount)
	assert.Equal(t, 28.33, b.TrainerNet)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
}

func TestCreate_Rejections(t *testing.T) {
	future := fixedNow.Add(24 * time.Hour)

	tests := []struct {
		name    string
		trainer *domain.Trainer
		pricing *domain.Pricing
		start   time.Time
		client  int64
		create  error
		wantErr error
	}{
		{
			name:    "trainer pending",
			trainer: &domain.Trainer{ID: 5, UserID: 50, Status: domain.TrainerPending},
			start:   future, client: 11, wantErr: ErrTrainerNotBookable,
		},
		{
			name:    "own listing",
			trainer: approvedTrainer(),
			start:   future, client: 50, wantErr: ErrForbidden,
		},
		{
			name:    "pricing of another trainer",
			trainer: approvedTrainer(),
			pricing: &domain.Pricing{ID: 7, TrainerID: 6, DurationMinutes: 60, Price: 10, Active: true},
			start:   future, client: 11, wantErr: ErrPricingUnavailable,
		},
		{
			name:    "inactive pricing",
			trainer: approvedTrainer(),
			pricing: &domain.Pricing{ID: 7, TrainerID: 5, DurationMinutes: 60, Price: 10},
			start:   future, client: 11, wantErr: ErrPricingUnavailable,
		},
		{
			name:    "inside lead time",
			trainer: approvedTrainer(),
			pricing: &domain.Pricing{ID: 7, TrainerID: 5, DurationMinutes: 60, Price: 10, Active: true},
			start:   fixedNow.Add(30 * time.Minute), client: 11, wantErr: ErrStartTooSoon,
		},
		{
			name:    "overlap",
			trainer: approvedTrainer(),
			pricing: &domain.Pricing{ID: 7, TrainerID: 5, DurationMinutes: 60, Price: 10, Active: true},
			start:   future, client: 11, create: repository.ErrOverlap, wantErr: ErrSlotTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			trainers := new(MockTrainerRepository)
			svc := newService(bookings, trainers)

			trainers.On("GetByID", mock.Anything, int64(5)).Return(tt.trainer, nil)
			if tt.pricing != nil {
				trainers.On("GetPricing", mock.Anything, int64(7)).Return(tt.pricing, nil)
			}
			bookings.On("Create", mock.Anything, mock.Anything).Return(tt.create).Maybe()

			_, err := svc.Create(context.Background(), tt.client, CreateBookingRequest{TrainerID: 5, PricingID: 7, StartTime: tt.start})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_TrainerNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	trainers := new(MockTrainerRepository)
	trainers.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := newService(bookings, trainers).Create(context.Background(), 1, CreateBookingRequest{TrainerID: 5, PricingID: 7})
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func bookingIn(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID: 3, ClientID: 11, TrainerID: 5, Status: status,
		TotalPrice: 100, CommissionAmount: 15, TrainerNet: 85,
		Trainer: approvedTrainer(),
	}
}

func TestTransition_RoleRules(t *testing.T) {
	client := Actor{UserID: 11, Role: domain.RoleClient}
	trainer := Actor{UserID: 50, Role: domain.RoleTrainer}
	stranger := Actor{UserID: 77, Role: domain.RoleClient}

	tests := []struct {
		name    string
		from    domain.BookingStatus
		actor   Actor
		target  string
		wantErr error
	}{
		{name: "trainer accepts", from: domain.BookingPending, actor: trainer, target: "assigned"},
		{name: "client cannot accept", from: domain.BookingPending, actor: client, target: "assigned", wantErr: ErrForbidden},
		{name: "stranger cannot cancel", from: domain.BookingPending, actor: stranger, target: "cancelled", wantErr: ErrForbidden},
		{name: "skip ahead", from: domain.BookingPending, actor: trainer, target: "delivered", wantErr: ErrInvalidStatusTransition},
		{name: "trainer cannot complete", from: domain.BookingDelivered, actor: trainer, target: "completed", wantErr: ErrForbidden},
		{name: "cancel after delivering", from: domain.BookingDelivering, actor: client, target: "cancelled", wantErr: ErrInvalidStatusTransition},
		{name: "unknown status", from: domain.BookingPending, actor: trainer, target: "archived", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			svc := newService(bookings, new(MockTrainerRepository))
			bookings.On("GetByID", mock.Anything, int64(3)).Return(bookingIn(tt.from), nil)
			bookings.On("UpdateStatus", mock.Anything, int64(3), tt.from, mock.Anything, mock.Anything).Return(nil).Maybe()

			_, err := svc.Transition(context.Background(), 3, tt.actor, TransitionRequest{Status: tt.target})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransition_CancelNeedsReason(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := newService(bookings, new(MockTrainerRepository))
	bookings.On("GetByID", mock.Anything, int64(3)).Return(bookingIn(domain.BookingAssigned), nil)

	_, err := svc.Transition(context.Background(), 3, Actor{UserID: 11, Role: domain.RoleClient}, TransitionRequest{Status: "cancelled", Reason: "  "})
	assert.ErrorIs(t, err, ErrReasonRequired)

	bookings.On("UpdateStatus", mock.Anything, int64(3), domain.BookingAssigned, domain.BookingCancelled,
		mock.MatchedBy(func(f map[string]any) bool { return f["cancellation_reason"] == "sick" })).Return(nil)

	_, err = svc.Transition(context.Background(), 3, Actor{UserID: 11, Role: domain.RoleClient}, TransitionRequest{Status: "cancelled", Reason: "sick"})
	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestTransition_CompleteRequiresPayment(t *testing.T) {
	for _, ps := range []domain.PaymentStatus{domain.PaymentUnpaid, domain.PaymentRefunded} {
		t.Run(string(ps), func(t *testing.T) {
			bookings := new(MockBookingRepository)
			svc := newService(bookings, new(MockTrainerRepository))
			b := bookingIn(domain.BookingDelivered)
			b.PaymentStatus = ps
			bookings.On("GetByID", mock.Anything, int64(3)).Return(b, nil)

			_, err := svc.Transition(context.Background(), 3, Actor{UserID: 11, Role: domain.RoleClient}, TransitionRequest{Status: "completed"})
			assert.ErrorIs(t, err, ErrNotPaid)

			_, err = svc.Transition(context.Background(), 3, Actor{UserID: 1, Role: domain.RoleAdmin}, TransitionRequest{Status: "completed"})
			assert.ErrorIs(t, err, ErrNotPaid)
			bookings.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransition_CompleteRecordsPayout(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := newService(bookings, new(MockTrainerRepository))
	paid := bookingIn(domain.BookingDelivered)
	paid.PaymentStatus = domain.PaymentPaid
	bookings.On("GetByID", mock.Anything, int64(3)).Return(paid, nil)
	bookings.On("Complete", mock.Anything, int64(3), domain.BookingDelivered, mock.MatchedBy(func(p *domain.TrainerPayout) bool {
		return p.BookingID == 3 && p.TrainerID == 5 && p.Net == 85 && p.Status == domain.PayoutPending
	})).Return(nil)

	_, err := svc.Transition(context.Background(), 3, Actor{UserID: 11, Role: domain.RoleClient}, TransitionRequest{Status: "completed"})
	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestTransition_StaleRowIsConflict(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := newService(bookings, new(MockTrainerRepository))
	bookings.On("GetByID", mock.Anything, int64(3)).Return(bookingIn(domain.BookingPending), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(3), domain.BookingPending, domain.BookingAssigned, mock.Anything).Return(repository.ErrStale)

	_, err := svc.Transition(context.Background(), 3, Actor{UserID: 1, Role: domain.RoleAdmin}, TransitionRequest{Status: "assigned"})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestGet_OnlyParticipants(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := newService(bookings, new(MockTrainerRepository))
	bookings.On("GetByID", mock.Anything, int64(3)).Return(bookingIn(domain.BookingPending), nil)

	_, err := svc.Get(context.Background(), 3, Actor{UserID: 11, Role: domain.RoleClient})
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), 3, Actor{UserID: 50, Role: domain.RoleTrainer})
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), 3, Actor{UserID: 2, Role: domain.RoleAdmin})
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), 3, Actor{UserID: 12, Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListMine_ScopesByRole(t *testing.T) {
	bookings := new(MockBookingRepository)
	trainers := new(MockTrainerRepository)
	svc := newService(bookings, trainers)

	trainers.On("GetByUserID", mock.Anything, int64(50)).Return(approvedTrainer(), nil)
	bookings.On("List", mock.Anything, mock.MatchedBy(func(f repository.BookingFilter) bool {
		return f.TrainerID == 5 && f.ClientID == 0
	})).Return([]domain.Booking{}, int64(0), nil).Once()
	bookings.On("List", mock.Anything, mock.MatchedBy(func(f repository.BookingFilter) bool {
		return f.ClientID == 11 && f.TrainerID == 0 && f.Status == domain.BookingPending
	})).Return([]domain.Booking{}, int64(0), nil).Once()

	_, _, err := svc.ListMine(context.Background(), Actor{UserID: 50, Role: domain.RoleTrainer}, ListQuery{})
	require.NoError(t, err)
	_, _, err = svc.ListMine(context.Background(), Actor{UserID: 11, Role: domain.RoleClient}, ListQuery{Status: "pending"})
	require.NoError(t, err)
	_, _, err = svc.ListMine(context.Background(), Actor{UserID: 11, Role: domain.RoleClient}, ListQuery{Status: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertExpectations(t)
}

func TestAvailability_SubtractsBusy(t *testing.T) {
	bookings := new(MockBookingRepository)
	trainers := new(MockTrainerRepository)
	svc := newService(bookings, trainers)

	// 2026-12-30 is a Wednesday.
	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	trainers.On("GetByID", mock.Anything, int64(5)).Return(approvedTrainer(), nil)
	trainers.On("ListAvailability", mock.Anything, int64(5)).Return([]domain.AvailabilitySlot{
		{Weekday: 3, StartTime: "09:00", EndTime: "13:00"},
		{Weekday: 3, StartTime: "15:00", EndTime: "18:00"},
		{Weekday: 4, StartTime: "09:00", EndTime: "18:00"},
	}, nil)
	bookings.On("Busy", mock.Anything, int64(5), day, day.Add(24*time.Hour)).Return([]domain.Booking{
		{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
		{StartTime: day.Add(12*time.Hour + 30*time.Minute), EndTime: day.Add(15*time.Hour + 30*time.Minute)},
	}, nil)

	res, err := svc.Availability(context.Background(), 5, "2026-12-30")
	require.NoError(t, err)

	got := make([]string, 0, len(res.Free))
	for _, s := range res.Free {
		got = append(got, s.Start.Format("15:04")+"-"+s.End.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00-10:00", "11:00-12:30", "15:30-18:00"}, got)
}

func TestAvailability_BadDate(t *testing.T) {
	svc := newService(new(MockBookingRepository), new(MockTrainerRepository))
	_, err := svc.Availability(context.Background(), 5, "30-12-2026")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubtractBusy(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	open, close := day.Add(9*time.Hour), day.Add(17*time.Hour)

	free := subtractBusy(open, close, nil)
	require.Len(t, free, 1)

	free = subtractBusy(open, close, []TimeSlot{
		{Start: day.Add(8 * time.Hour), End: day.Add(10 * time.Hour)},
		{Start: day.Add(9*time.Hour + 30*time.Minute), End: day.Add(11 * time.Hour)},
		{Start: day.Add(16 * time.Hour), End: day.Add(18 * time.Hour)},
	})
	require.Len(t, free, 1)
	assert.Equal(t, day.Add(11*time.Hour), free[0].Start)
	assert.Equal(t, day.Add(16*time.Hour), free[0].End)

	free = subtractBusy(open, close, []TimeSlot{{Start: open, End: close}})
	assert.Empty(t, free)
}
