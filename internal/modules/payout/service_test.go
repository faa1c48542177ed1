package payout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/repository"
)

type staticSettings settings.Settings

func (s staticSettings) Current(context.Context) (settings.Settings, error) {
	return settings.Settings(s), nil
}

type fixture struct {
	svc   *Service
	db    *gorm.DB
	users *repository.UserRepository
	next  int64
}

func newFixture(t *testing.T, minPayout float64) *fixture {
	t.Helper()
	db := database.NewTestDB(t)
	cfg := settings.Defaults(0.15)
	cfg.MinPayoutAmount = minPayout
	svc := NewService(repository.NewPayoutRepository(db), repository.NewTrainerRepository(db), staticSettings(cfg))
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, db: db, users: repository.NewUserRepository(db)}
}

func (f *fixture) trainer(t *testing.T, email string) (int64, *domain.Trainer) {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Role: domain.RoleTrainer}
	tr := &domain.Trainer{Specialties: datatypes.NewJSONSlice([]string{}), Photos: datatypes.NewJSONSlice([]string{}), Status: domain.TrainerApproved}
	require.NoError(t, f.users.Create(context.Background(), u, &domain.Profile{FullName: "Coach"}, tr))
	return u.ID, tr
}

func (f *fixture) payout(t *testing.T, trainerID int64, net float64, status domain.PayoutStatus) *domain.TrainerPayout {
	t.Helper()
	f.next++
	p := &domain.TrainerPayout{BookingID: f.next, TrainerID: trainerID, Gross: net, Net: net, Status: status}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func TestEarnings(t *testing.T) {
	f := newFixture(t, 0)
	userID, tr := f.trainer(t, "t@x.io")
	f.payout(t, tr.ID, 10.10, domain.PayoutPending)
	f.payout(t, tr.ID, 20.20, domain.PayoutBatched)
	f.payout(t, tr.ID, 30.30, domain.PayoutPaid)
	f.payout(t, tr.ID, 99, domain.PayoutCancelled)

	sum, err := f.svc.Earnings(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 10.10, sum.Pending)
	assert.Equal(t, 20.20, sum.Batched)
	assert.Equal(t, 30.30, sum.Paid)
	assert.Equal(t, 60.60, sum.LifetimeNet)

	_, err = f.svc.Earnings(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrNoTrainerProfile)
}

func TestCreateBatch_AllEligible(t *testing.T) {
	f := newFixture(t, 50)
	_, rich := f.trainer(t, "rich@x.io")
	_, poor := f.trainer(t, "poor@x.io")
	f.payout(t, rich.ID, 30, domain.PayoutPending)
	f.payout(t, rich.ID, 25.5, domain.PayoutPending)
	f.payout(t, poor.ID, 10, domain.PayoutPending)

	pending, err := f.svc.ListPending(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, rich.ID, pending[0].TrainerID)

	batch, err := f.svc.CreateBatch(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.PayoutCount)
	assert.Equal(t, 55.5, batch.TotalNet)

	got, err := f.svc.GetBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	require.Len(t, got.Payouts, 2)
	for _, p := range got.Payouts {
		assert.Equal(t, domain.PayoutBatched, p.Status)
	}

	// the poor trainer's payout is still pending
	left, err := f.svc.ListPending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, poor.ID, left[0].TrainerID)

	_, err = f.svc.CreateBatch(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrNothingToBatch)
}

func TestCreateBatch_ExplicitIDs(t *testing.T) {
	f := newFixture(t, 20)
	_, tr := f.trainer(t, "t@x.io")
	a := f.payout(t, tr.ID, 15, domain.PayoutPending)
	b := f.payout(t, tr.ID, 15, domain.PayoutPending)
	paid := f.payout(t, tr.ID, 40, domain.PayoutPaid)

	_, err := f.svc.CreateBatch(context.Background(), 1, []int64{a.ID})
	assert.ErrorIs(t, err, ErrBelowMinimum)

	_, err = f.svc.CreateBatch(context.Background(), 1, []int64{a.ID, paid.ID})
	assert.ErrorIs(t, err, ErrPayoutNotPending)

	batch, err := f.svc.CreateBatch(context.Background(), 1, []int64{a.ID, b.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, batch.PayoutCount)
	assert.Equal(t, 30.0, batch.TotalNet)
}

func TestMarkBatchPaid(t *testing.T) {
	f := newFixture(t, 0)
	userID, tr := f.trainer(t, "t@x.io")
	f.payout(t, tr.ID, 12.34, domain.PayoutPending)

	batch, err := f.svc.CreateBatch(context.Background(), 1, nil)
	require.NoError(t, err)

	_, err = f.svc.MarkBatchPaid(context.Background(), batch.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := f.svc.MarkBatchPaid(context.Background(), batch.ID, "WIRE-001")
	require.NoError(t, err)
	assert.Equal(t, domain.BatchPaid, got.Status)
	assert.Equal(t, "WIRE-001", got.Reference)
	require.NotNil(t, got.PaidAt)

	_, err = f.svc.MarkBatchPaid(context.Background(), batch.ID, "WIRE-002")
	assert.ErrorIs(t, err, ErrBatchAlreadyPaid)

	_, err = f.svc.MarkBatchPaid(context.Background(), 999, "X")
	assert.ErrorIs(t, err, ErrBatchNotFound)

	sum, err := f.svc.Earnings(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 12.34, sum.Paid)

	rows, total, err := f.svc.ListPayouts(context.Background(), userID, "paid", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.PayoutPaid, rows[0].Status)
}

func TestListPending_NegativeMinimum(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.svc.ListPending(context.Background(), -1)
	assert.ErrorIs(t, err, ErrValidation)
}
