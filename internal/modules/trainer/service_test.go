package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.UserRepository) {
	t.Helper()
	db := database.NewTestDB(t)
	return NewService(repository.NewTrainerRepository(db), repository.NewReviewRepository(db)), repository.NewUserRepository(db)
}

func seedTrainer(t *testing.T, users *repository.UserRepository, email string, status domain.TrainerStatus) *domain.Trainer {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Role: domain.RoleTrainer}
	tr := &domain.Trainer{
		Headline:    "Coach " + email,
		Specialties: datatypes.NewJSONSlice([]string{"yoga"}),
		Photos:      datatypes.NewJSONSlice([]string{}),
		Status:      status,
	}
	require.NoError(t, users.Create(context.Background(), u, &domain.Profile{FullName: "Coach"}, tr))
	return tr
}

func TestBuildSlots(t *testing.T) {
	tests := []struct {
		name    string
		in      []SlotInput
		wantErr error
	}{
		{name: "empty", in: nil},
		{name: "ok", in: []SlotInput{{1, "09:00", "12:00"}, {1, "12:00", "14:00"}, {0, "10:00", "11:00"}}},
		{name: "bad clock", in: []SlotInput{{1, "9:00", "12:00"}}, wantErr: ErrInvalidSlot},
		{name: "bad weekday", in: []SlotInput{{7, "09:00", "12:00"}}, wantErr: ErrInvalidSlot},
		{name: "end before start", in: []SlotInput{{2, "12:00", "09:00"}}, wantErr: ErrInvalidSlot},
		{name: "overlap", in: []SlotInput{{3, "09:00", "12:00"}, {3, "11:30", "13:00"}}, wantErr: ErrOverlappingSlots},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := buildSlots(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, slots, len(tt.in))
		})
	}
}

func TestBuildSlots_SortsByWeekday(t *testing.T) {
	slots, err := buildSlots([]SlotInput{{4, "10:00", "11:00"}, {1, "15:00", "16:00"}, {1, "08:00", "09:00"}})
	require.NoError(t, err)
	assert.Equal(t, 1, slots[0].Weekday)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, 4, slots[2].Weekday)
}

func TestValidatePricing(t *testing.T) {
	ok := PricingRequest{Title: "Single", SessionType: "single", Sessions: 1, DurationMinutes: 60, Price: 30}
	assert.NoError(t, validatePricing(&ok))

	bad := []PricingRequest{
		{Title: "Free", SessionType: "single", Sessions: 1, DurationMinutes: 60, Price: 0},
		{Title: "Short", SessionType: "single", Sessions: 1, DurationMinutes: 10, Price: 10},
		{Title: "Long", SessionType: "package", Sessions: 5, DurationMinutes: 481, Price: 10},
		{Title: "Zero", SessionType: "package", Sessions: 0, DurationMinutes: 60, Price: 10},
		{Title: "Odd", SessionType: "single", Sessions: 3, DurationMinutes: 60, Price: 10},
		{Title: "Kind", SessionType: "group", Sessions: 1, DurationMinutes: 60, Price: 10},
	}
	for _, req := range bad {
		assert.ErrorIs(t, validatePricing(&req), ErrInvalidPricing, req.Title)
	}
}

func TestGet_HidesUnapprovedTrainers(t *testing.T) {
	svc, users := newTestService(t)
	pending := seedTrainer(t, users, "p@example.com", domain.TrainerPending)

	_, err := svc.Get(context.Background(), pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPricingLifecycle(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()
	tr := seedTrainer(t, users, "c@example.com", domain.TrainerApproved)

	p, err := svc.CreatePricing(ctx, tr.UserID, PricingRequest{
		Title: "Pack of 5", SessionType: "package", Sessions: 5, DurationMinutes: 60, Price: 200,
	})
	require.NoError(t, err)
	assert.True(t, p.Active)

	detail, err := svc.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Pricing, 1)

	require.NoError(t, svc.DeletePricing(ctx, tr.UserID, p.ID))

	detail, err = svc.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Pricing)

	all, err := svc.ListPricing(ctx, tr.UserID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)
}

func TestUpdatePricing_OtherTrainerForbidden(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()
	owner := seedTrainer(t, users, "owner@example.com", domain.TrainerApproved)
	other := seedTrainer(t, users, "other@example.com", domain.TrainerApproved)

	p, err := svc.CreatePricing(ctx, owner.UserID, PricingRequest{
		Title: "Single", SessionType: "single", Sessions: 1, DurationMinutes: 45, Price: 25,
	})
	require.NoError(t, err)

	_, err = svc.UpdatePricing(ctx, other.UserID, p.ID, PricingRequest{
		Title: "Stolen", SessionType: "single", Sessions: 1, DurationMinutes: 45, Price: 1,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateMine_NormalizesSpecialties(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()
	tr := seedTrainer(t, users, "s@example.com", domain.TrainerApproved)

	specs := []string{" Boxing", "boxing", "HIIT"}
	updated, err := svc.UpdateMine(ctx, tr.UserID, UpdateTrainerRequest{Specialties: &specs})
	require.NoError(t, err)
	assert.Equal(t, []string{"boxing", "hiit"}, []string(updated.Specialties))

	_, err = svc.GetMine(ctx, 424242)
	assert.ErrorIs(t, err, ErrNoTrainerProfile)
}

func TestList_OnlyApproved(t *testing.T) {
	svc, users := newTestService(t)
	seedTrainer(t, users, "a@example.com", domain.TrainerApproved)
	seedTrainer(t, users, "b@example.com", domain.TrainerPending)
	seedTrainer(t, users, "c@example.com", domain.TrainerSuspended)

	list, total, err := svc.List(context.Background(), ListQuery{Specialty: "Yoga"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, domain.TrainerApproved, list[0].Status)
}
