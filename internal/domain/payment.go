package domain

import "time"

type CheckoutStatus string

const (
	CheckoutCreated CheckoutStatus = "created"
	CheckoutPending CheckoutStatus = "pending"
	CheckoutPaid    CheckoutStatus = "paid"
	CheckoutFailed  CheckoutStatus = "failed"
)

// Payment is one hosted-checkout attempt for a booking.
type Payment struct {
	ID            int64          `json:"id" gorm:"primaryKey"`
	BookingID     int64          `json:"booking_id" gorm:"not null;index"`
	InvoiceID     int64          `json:"invoice_id" gorm:"not null;uniqueIndex"`
	Amount        string         `json:"amount" gorm:"size:32;not null"`
	Status        CheckoutStatus `json:"status" gorm:"size:16;not null"`
	Signature     string         `json:"-" gorm:"size:128"`
	CheckoutURL   string         `json:"checkout_url"`
	FailureReason string         `json:"failure_reason,omitempty" gorm:"type:text"`
	CallbackBody  string         `json:"-" gorm:"type:text"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
