package repository

import (
	"context"
	"errors"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByInvoice(ctx context.Context, invoiceID int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var rows []domain.Payment
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, invoiceID int64, rawBody, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("invoice_id = ? AND status <> ?", invoiceID, domain.CheckoutPaid).
		Updates(map[string]any{
			"status":         domain.CheckoutFailed,
			"callback_body":  rawBody,
			"failure_reason": reason,
		}).Error
}

// MarkPaidIdempotent marks the payment and its booking paid. It reports false
// when the payment was already paid.
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, invoiceID int64, rawBody string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("invoice_id = ?", invoiceID).First(&p).Error; err != nil {
			return err
		}
		if p.Status == domain.CheckoutPaid {
			changed = false
			return nil
		}
		res := tx.Model(&domain.Payment{}).Where("id = ?", p.ID).Updates(map[string]any{
			"status":         domain.CheckoutPaid,
			"callback_body":  rawBody,
			"failure_reason": "",
			"paid_at":        paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		err := tx.Model(&domain.Booking{}).
			Where("id = ? AND payment_status = ?", p.BookingID, domain.PaymentUnpaid).
			Update("payment_status", domain.PaymentPaid).Error
		if err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// Refund flips a paid booking to refunded and cancels its payout if it was not batched yet.
func (r *PaymentRepository) Refund(ctx context.Context, bookingID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := casUpdate(tx, &domain.Booking{}, map[string]any{"payment_status": domain.PaymentRefunded},
			"id = ? AND payment_status = ?", bookingID, domain.PaymentPaid)
		if err != nil {
			return err
		}
		return tx.Model(&domain.TrainerPayout{}).
			Where("booking_id = ? AND status = ?", bookingID, domain.PayoutPending).
			Update("status", domain.PayoutCancelled).Error
	})
}
