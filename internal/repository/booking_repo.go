package repository

import (
	"context"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingFilter struct {
	ClientID      int64
	TrainerID     int64
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	From          *time.Time
	To            *time.Time
	Page          Page
}

// Create inserts the booking unless it overlaps an active booking of the same
// trainer. The trainer row is locked so concurrent bookings serialize.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createBooking(tx, b)
	})
}

func createBooking(tx *gorm.DB, b *domain.Booking) error {
	var t domain.Trainer
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&t, b.TrainerID).Error; err != nil {
		return err
	}

	var cnt int64
	err := tx.Model(&domain.Booking{}).
		Where("trainer_id = ? AND status <> ?", b.TrainerID, domain.BookingCancelled).
		Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
		Count(&cnt).Error
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrOverlap
	}
	return tx.Omit("Trainer", "Client").Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Trainer.Profile").
		Preload("Client.Profile").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Booking{})
		if f.ClientID != 0 {
			q = q.Where("client_id = ?", f.ClientID)
		}
		if f.TrainerID != 0 {
			q = q.Where("trainer_id = ?", f.TrainerID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.PaymentStatus != "" {
			q = q.Where("payment_status = ?", f.PaymentStatus)
		}
		if f.From != nil {
			q = q.Where("start_time >= ?", f.From.UTC())
		}
		if f.To != nil {
			q = q.Where("start_time < ?", f.To.UTC())
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.Booking
	err := base().
		Preload("Trainer.Profile").
		Preload("Client.Profile").
		Order("start_time DESC").Order("id DESC").
		Scopes(paginate(f.Page)).
		Find(&rows).Error
	return rows, total, err
}

// Busy returns active bookings of the trainer overlapping [from, to).
func (r *BookingRepository) Busy(ctx context.Context, trainerID int64, from, to time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where("trainer_id = ? AND status <> ?", trainerID, domain.BookingCancelled).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
		Order("start_time").
		Find(&rows).Error
	return rows, err
}

// UpdateStatus moves the booking from -> to; ErrStale when the booking is no longer in from.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, fields map[string]any) error {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}
	return casUpdate(r.db.WithContext(ctx), &domain.Booking{}, updates, "id = ? AND status = ?", id, from)
}

// Complete marks a paid booking completed and records the trainer payout once.
// ErrStale when the booking left from or is no longer paid.
func (r *BookingRepository) Complete(ctx context.Context, id int64, from domain.BookingStatus, payout *domain.TrainerPayout) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := casUpdate(tx, &domain.Booking{}, map[string]any{
			"status":       domain.BookingCompleted,
			"completed_at": now,
		}, "id = ? AND status = ? AND payment_status = ?", id, from, domain.PaymentPaid)
		if err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			DoNothing: true,
		}).Create(payout).Error
	})
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countBy(r.db.WithContext(ctx), &domain.Booking{}, "status")
}
