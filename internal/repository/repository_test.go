package repository

import (
	"context"
	"testing"
	"time"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ctx = context.Background()

func seedUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Role: role}
	p := &domain.Profile{FullName: email}
	require.NoError(t, NewUserRepository(db).Create(ctx, u, p, nil))
	return u
}

func seedTrainer(t *testing.T, db *gorm.DB, email string, specialties ...string) *domain.Trainer {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Role: domain.RoleTrainer}
	p := &domain.Profile{FullName: email, Bio: "bio of " + email}
	tr := &domain.Trainer{
		Headline:    "Coach " + email,
		City:        "Almaty",
		Specialties: datatypes.NewJSONSlice(specialties),
		Photos:      datatypes.NewJSONSlice([]string{}),
		Status:      domain.TrainerApproved,
	}
	require.NoError(t, NewUserRepository(db).Create(ctx, u, p, tr))
	return tr
}

func newBooking(clientID, trainerID int64, start time.Time, minutes int) *domain.Booking {
	return &domain.Booking{
		ClientID:         clientID,
		TrainerID:        trainerID,
		StartTime:        start,
		EndTime:          start.Add(time.Duration(minutes) * time.Minute),
		Sessions:         1,
		TotalPrice:       100,
		CommissionRate:   0.15,
		CommissionAmount: 15,
		TrainerNet:       85,
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentUnpaid,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewUserRepository(db)

	u := seedUser(t, db, "Anna@Example.com ", domain.RoleClient)
	assert.Equal(t, "anna@example.com", u.Email)

	got, err := repo.GetByEmail(ctx, "ANNA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Equal(t, u.ID, got.Profile.UserID)

	err = repo.Create(ctx, &domain.User{Email: "anna@example.com", PasswordHash: "x", Role: domain.RoleClient}, &domain.Profile{FullName: "dup"}, nil)
	assert.True(t, database.IsUniqueViolation(err))

	require.NoError(t, repo.SetBanned(ctx, u.ID, true, "spam"))
	banned := true
	users, total, err := repo.List(ctx, UserFilter{Banned: &banned, Page: NewPage(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "spam", users[0].BanReason)
}

func TestBookingRepository_RejectsOverlap(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewBookingRepository(db)
	client := seedUser(t, db, "client@x.io", domain.RoleClient)
	tr := seedTrainer(t, db, "coach@x.io")

	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newBooking(client.ID, tr.ID, start, 60)))

	err := repo.Create(ctx, newBooking(client.ID, tr.ID, start.Add(30*time.Minute), 60))
	assert.ErrorIs(t, err, ErrOverlap)

	// back-to-back is fine
	require.NoError(t, repo.Create(ctx, newBooking(client.ID, tr.ID, start.Add(time.Hour), 60)))

	busy, err := repo.Busy(ctx, tr.ID, start.Add(-time.Hour), start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, busy, 2)
}

func TestBookingRepository_CancelledDoesNotBlock(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewBookingRepository(db)
	client := seedUser(t, db, "client@x.io", domain.RoleClient)
	tr := seedTrainer(t, db, "coach@x.io")

	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	b := newBooking(client.ID, tr.ID, start, 60)
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingCancelled, map[string]any{"cancellation_reason": "sick"}))

	assert.ErrorIs(t, repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingAssigned, nil), ErrStale)
	require.NoError(t, repo.Create(ctx, newBooking(client.ID, tr.ID, start, 60)))
}

func TestBookingRepository_CompleteCreatesPayoutOnce(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewBookingRepository(db)
	client := seedUser(t, db, "client@x.io", domain.RoleClient)
	tr := seedTrainer(t, db, "coach@x.io")

	b := newBooking(client.ID, tr.ID, time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC), 60)
	b.Status = domain.BookingDelivered
	require.NoError(t, repo.Create(ctx, b))

	payout := &domain.TrainerPayout{BookingID: b.ID, TrainerID: tr.ID, Gross: 100, Commission: 15, Net: 85, Status: domain.PayoutPending}
	assert.ErrorIs(t, repo.Complete(ctx, b.ID, domain.BookingDelivered, payout), ErrStale, "unpaid booking")

	var count int64
	require.NoError(t, db.Model(&domain.TrainerPayout{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&domain.Booking{}).Where("id = ?", b.ID).Update("payment_status", domain.PaymentPaid).Error)
	require.NoError(t, repo.Complete(ctx, b.ID, domain.BookingDelivered, payout))
	assert.ErrorIs(t, repo.Complete(ctx, b.ID, domain.BookingDelivered, &domain.TrainerPayout{BookingID: b.ID, TrainerID: tr.ID, Status: domain.PayoutPending}), ErrStale)

	require.NoError(t, db.Model(&domain.TrainerPayout{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.Trainer)
	assert.Equal(t, tr.UserID, got.Trainer.UserID)
}

func TestTrainerRepository_ListFilters(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewTrainerRepository(db)

	yoga := seedTrainer(t, db, "yoga@x.io", "yoga", "pilates")
	box := seedTrainer(t, db, "box@x.io", "boxing")
	pending := seedTrainer(t, db, "new@x.io", "yoga")
	require.NoError(t, repo.Update(ctx, pending.ID, map[string]any{"status": domain.TrainerPending}))
	require.NoError(t, repo.Update(ctx, box.ID, map[string]any{"rating_avg": 4.8}))

	require.NoError(t, repo.CreatePricing(ctx, &domain.Pricing{TrainerID: yoga.ID, Title: "single", SessionType: domain.SessionSingle, Sessions: 1, DurationMinutes: 60, Price: 30, Active: true}))
	require.NoError(t, repo.CreatePricing(ctx, &domain.Pricing{TrainerID: box.ID, Title: "single", SessionType: domain.SessionSingle, Sessions: 1, DurationMinutes: 60, Price: 50, Active: true}))
	inactive := &domain.Pricing{TrainerID: box.ID, Title: "promo", SessionType: domain.SessionSingle, Sessions: 1, DurationMinutes: 60, Price: 5, Active: true}
	require.NoError(t, repo.CreatePricing(ctx, inactive))
	require.NoError(t, repo.DeactivatePricing(ctx, inactive.ID))

	approved := domain.TrainerApproved

	rows, total, err := repo.List(ctx, TrainerFilter{Status: approved, Specialty: "Yoga", Page: NewPage(1, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, yoga.ID, rows[0].ID)
	require.NotNil(t, rows[0].FromPrice)
	assert.Equal(t, 30.0, *rows[0].FromPrice)

	maxPrice := 40.0
	rows, _, err = repo.List(ctx, TrainerFilter{Status: approved, MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, yoga.ID, rows[0].ID)

	rows, _, err = repo.List(ctx, TrainerFilter{Status: approved, Sort: SortRating})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, box.ID, rows[0].ID)

	rows, _, err = repo.List(ctx, TrainerFilter{Status: approved, Sort: SortPrice})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, yoga.ID, rows[0].ID)

	rows, _, err = repo.List(ctx, TrainerFilter{Status: approved, Query: "bio of box"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, box.ID, rows[0].ID)
}

func TestTrainerRepository_ReplaceAvailability(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewTrainerRepository(db)
	tr := seedTrainer(t, db, "coach@x.io")

	require.NoError(t, repo.ReplaceAvailability(ctx, tr.ID, []domain.AvailabilitySlot{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
		{Weekday: 3, StartTime: "14:00", EndTime: "18:00"},
	}))
	require.NoError(t, repo.ReplaceAvailability(ctx, tr.ID, []domain.AvailabilitySlot{
		{Weekday: 2, StartTime: "08:00", EndTime: "10:00"},
	}))

	slots, err := repo.ListAvailability(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 2, slots[0].Weekday)
}

func TestReviewRepository_RatingFollowsVisibility(t *testing.T) {
	db := database.NewTestDB(t)
	reviews := NewReviewRepository(db)
	trainers := NewTrainerRepository(db)
	client := seedUser(t, db, "client@x.io", domain.RoleClient)
	tr := seedTrainer(t, db, "coach@x.io")

	r1 := &domain.Review{BookingID: 1, ClientID: client.ID, TrainerID: tr.ID, Rating: 5}
	r2 := &domain.Review{BookingID: 2, ClientID: client.ID, TrainerID: tr.ID, Rating: 2}
	require.NoError(t, reviews.Create(ctx, r1))
	require.NoError(t, reviews.Create(ctx, r2))

	got, err := trainers.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.RatingAvg)
	assert.Equal(t, 2, got.RatingCount)

	_, err = reviews.SetHidden(ctx, r2.ID, true)
	require.NoError(t, err)
	got, err = trainers.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.RatingAvg)
	assert.Equal(t, 1, got.RatingCount)

	visible, total, err := reviews.List(ctx, ReviewFilter{TrainerID: tr.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, visible[0].Client)
	assert.Equal(t, "client@x.io", visible[0].Client.FullName)

	err = reviews.Create(ctx, &domain.Review{BookingID: 1, ClientID: client.ID, TrainerID: tr.ID, Rating: 4})
	assert.True(t, database.IsUniqueViolation(err))
}

func TestRequestRepository_Accept(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewRequestRepository(db)
	client := seedUser(t, db, "client@x.io", domain.RoleClient)
	t1 := seedTrainer(t, db, "one@x.io")
	t2 := seedTrainer(t, db, "two@x.io")

	req := &domain.TrainingRequest{ClientID: client.ID, Title: "Marathon prep", Status: domain.RequestOpen}
	require.NoError(t, repo.CreateRequest(ctx, req))
	a1 := &domain.TrainingApplication{RequestID: req.ID, TrainerID: t1.ID, ProposedPrice: 80, Status: domain.ApplicationPending}
	a2 := &domain.TrainingApplication{RequestID: req.ID, TrainerID: t2.ID, ProposedPrice: 60, Status: domain.ApplicationPending}
	require.NoError(t, repo.CreateApplication(ctx, a1))
	require.NoError(t, repo.CreateApplication(ctx, a2))

	dup := &domain.TrainingApplication{RequestID: req.ID, TrainerID: t1.ID, ProposedPrice: 70, Status: domain.ApplicationPending}
	assert.True(t, database.IsUniqueViolation(repo.CreateApplication(ctx, dup)))

	listed, _, err := repo.ListRequests(ctx, RequestFilter{Status: domain.RequestOpen})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 2, listed[0].ApplicationsCount)

	b := newBooking(client.ID, t2.ID, time.Date(2030, 2, 1, 9, 0, 0, 0, time.UTC), 60)
	b.Status = domain.BookingAssigned
	tid := req.ID
	b.TrainingRequestID = &tid
	require.NoError(t, repo.Accept(ctx, a2, b))

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestFilled, got.Status)

	apps, err := repo.ListApplications(ctx, req.ID)
	require.NoError(t, err)
	statuses := map[int64]domain.ApplicationStatus{}
	for _, a := range apps {
		statuses[a.ID] = a.Status
	}
	assert.Equal(t, domain.ApplicationRejected, statuses[a1.ID])
	assert.Equal(t, domain.ApplicationAccepted, statuses[a2.ID])

	// second accept fails and leaves no extra booking behind
	b2 := newBooking(client.ID, t1.ID, time.Date(2030, 2, 2, 9, 0, 0, 0, time.UTC), 60)
	assert.ErrorIs(t, repo.Accept(ctx, a1, b2), ErrStale)
	var bookings int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&bookings).Error)
	assert.Equal(t, int64(1), bookings)
}

func TestPayoutRepository_BatchLifecycle(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewPayoutRepository(db)

	p1 := &domain.TrainerPayout{BookingID: 1, TrainerID: 1, Gross: 100, Commission: 15, Net: 85, Status: domain.PayoutPending}
	p2 := &domain.TrainerPayout{BookingID: 2, TrainerID: 2, Gross: 50, Commission: 5, Net: 45, Status: domain.PayoutPending}
	require.NoError(t, db.Create(p1).Error)
	require.NoError(t, db.Create(p2).Error)

	batch := &domain.PayoutBatch{CreatedBy: 1, PayoutCount: 1, TotalNet: 85, Status: domain.BatchOpen}
	require.NoError(t, repo.CreateBatch(ctx, batch, []int64{p1.ID}))

	again := &domain.PayoutBatch{CreatedBy: 1, PayoutCount: 2, TotalNet: 130, Status: domain.BatchOpen}
	assert.ErrorIs(t, repo.CreateBatch(ctx, again, []int64{p1.ID, p2.ID}), ErrStale)

	pending, err := repo.Pending(ctx, nil)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, p2.ID, pending[0].ID)

	require.NoError(t, repo.MarkBatchPaid(ctx, batch.ID, "wire-42", time.Now().UTC()))
	assert.ErrorIs(t, repo.MarkBatchPaid(ctx, batch.ID, "wire-43", time.Now().UTC()), ErrStale)

	got, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchPaid, got.Status)
	assert.Equal(t, "wire-42", got.Reference)
	require.Len(t, got.Payouts, 1)
	assert.Equal(t, domain.PayoutPaid, got.Payouts[0].Status)
}

func TestPaymentRepository_MarkPaidAndRefund(t *testing.T) {
	db := database.NewTestDB(t)
	payments := NewPaymentRepository(db)
	bookings := NewBookingRepository(db)
	client := seedUser(t, db, "client@x.io", domain.RoleClient)
	tr := seedTrainer(t, db, "coach@x.io")

	b := newBooking(client.ID, tr.ID, time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC), 60)
	require.NoError(t, bookings.Create(ctx, b))
	p := &domain.Payment{BookingID: b.ID, InvoiceID: 1001, Amount: "100.00", Status: domain.CheckoutCreated}
	require.NoError(t, payments.Create(ctx, p))

	changed, err := payments.MarkPaidIdempotent(ctx, 1001, "raw", time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = payments.MarkPaidIdempotent(ctx, 1001, "raw", time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	payout := &domain.TrainerPayout{BookingID: b.ID, TrainerID: tr.ID, Net: 85, Status: domain.PayoutPending}
	require.NoError(t, db.Create(payout).Error)

	require.NoError(t, payments.Refund(ctx, b.ID))
	assert.ErrorIs(t, payments.Refund(ctx, b.ID), ErrStale)

	var reloaded domain.TrainerPayout
	require.NoError(t, db.First(&reloaded, payout.ID).Error)
	assert.Equal(t, domain.PayoutCancelled, reloaded.Status)
}

func TestFeedbackRepository_SubmitOnce(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewFeedbackRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	link := &domain.FeedbackLink{BookingID: 1, TrainerID: 2, Token: "tok-1", CreatedBy: 3, ExpiresAt: now.Add(time.Hour)}
	expired := &domain.FeedbackLink{BookingID: 1, TrainerID: 2, Token: "tok-2", CreatedBy: 3, ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.CreateLink(ctx, link))
	require.NoError(t, repo.CreateLink(ctx, expired))

	require.NoError(t, repo.Submit(ctx, link.ID, &domain.FeedbackResponse{BookingID: 1, TrainerID: 2, Rating: 4}, now))
	assert.ErrorIs(t, repo.Submit(ctx, link.ID, &domain.FeedbackResponse{BookingID: 1, TrainerID: 2, Rating: 5}, now), ErrStale)
	assert.ErrorIs(t, repo.Submit(ctx, expired.ID, &domain.FeedbackResponse{BookingID: 1, TrainerID: 2, Rating: 5}, now), ErrStale)

	avg, err := repo.AverageRating(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewSettingsRepository(db)

	require.NoError(t, repo.Upsert(ctx, []domain.PlatformSetting{{Key: domain.SettingCommissionRate, Value: "0.2"}}))
	require.NoError(t, repo.Upsert(ctx, []domain.PlatformSetting{{Key: domain.SettingCommissionRate, Value: "0.1"}}))

	s, err := repo.Get(ctx, domain.SettingCommissionRate)
	require.NoError(t, err)
	assert.JSONEq(t, "0.1", s.Value)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMessageRepository_UnreadFlow(t *testing.T) {
	db := database.NewTestDB(t)
	repo := NewMessageRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Message{BookingID: 1, SenderID: 10, RecipientID: 20, Body: "hi"}))
	}
	msgs, err := repo.List(ctx, 1, 0, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	rest, err := repo.List(ctx, 1, msgs[1].ID, 50)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	unread, err := repo.CountUnread(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	n, err := repo.MarkRead(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	unread, err = repo.CountUnread(ctx, 20)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
