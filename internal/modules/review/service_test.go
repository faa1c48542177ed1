package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type mockReviews struct {
	mock.Mock
}

func (m *mockReviews) Create(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *mockReviews) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviews) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviews) List(ctx context.Context, f repository.ReviewFilter) ([]domain.Review, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *mockReviews) SetHidden(ctx context.Context, id int64, hidden bool) (*domain.Review, error) {
	args := m.Called(ctx, id, hidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestCreate_Success(t *testing.T) {
	reviews, bookings := new(mockReviews), new(mockBookings)
	svc := NewService(reviews, bookings)

	bookings.On("GetByID", mock.Anything, int64(4)).Return(&domain.Booking{ID: 4, ClientID: 1, TrainerID: 9, Status: domain.BookingCompleted}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(4)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.TrainerID == 9 && rv.Rating == 5 && rv.Comment == "great"
	})).Return(nil)

	rv, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 4, Rating: 5, Comment: " great "})
	require.NoError(t, err)
	assert.Equal(t, int64(9), rv.TrainerID)
	reviews.AssertExpectations(t)
}

func TestCreate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		exists  bool
		wantErr error
	}{
		{name: "not completed", booking: &domain.Booking{ID: 4, ClientID: 1, Status: domain.BookingDelivered}, wantErr: ErrReviewNotAllowed},
		{name: "other client", booking: &domain.Booking{ID: 4, ClientID: 2, Status: domain.BookingCompleted}, wantErr: ErrForbidden},
		{name: "twice", booking: &domain.Booking{ID: 4, ClientID: 1, Status: domain.BookingCompleted}, exists: true, wantErr: ErrAlreadyReviewed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews, bookings := new(mockReviews), new(mockBookings)
			bookings.On("GetByID", mock.Anything, int64(4)).Return(tt.booking, nil)
			reviews.On("ExistsForBooking", mock.Anything, int64(4)).Return(tt.exists, nil).Maybe()

			_, err := NewService(reviews, bookings).Create(context.Background(), 1, CreateReviewRequest{BookingID: 4, Rating: 4})
			assert.ErrorIs(t, err, tt.wantErr)
			reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_InvalidRating(t *testing.T) {
	_, err := NewService(new(mockReviews), new(mockBookings)).Create(context.Background(), 1, CreateReviewRequest{BookingID: 4, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreate_UniqueRaceIsConflict(t *testing.T) {
	reviews, bookings := new(mockReviews), new(mockBookings)
	bookings.On("GetByID", mock.Anything, int64(4)).Return(&domain.Booking{ID: 4, ClientID: 1, Status: domain.BookingCompleted}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(4)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := NewService(reviews, bookings).Create(context.Background(), 1, CreateReviewRequest{BookingID: 4, Rating: 3})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestSetHidden_NotFound(t *testing.T) {
	reviews := new(mockReviews)
	reviews.On("SetHidden", mock.Anything, int64(8), true).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(reviews, new(mockBookings)).SetHidden(context.Background(), 8, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForTrainer_ExcludesHidden(t *testing.T) {
	reviews := new(mockReviews)
	reviews.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReviewFilter) bool {
		return f.TrainerID == 9 && !f.IncludeHidden && f.Page.Limit == 20
	})).Return([]domain.Review{{ID: 1}}, int64(1), nil)

	rows, total, err := NewService(reviews, new(mockBookings)).ListForTrainer(context.Background(), 9, 1, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.EqualValues(t, 1, total)
}
