package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAssigned   BookingStatus = "assigned"
	BookingDelivering BookingStatus = "delivering"
	BookingDelivered  BookingStatus = "delivered"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingAssigned, BookingCancelled},
	BookingAssigned:   {BookingDelivering, BookingCancelled},
	BookingDelivering: {BookingDelivered},
	BookingDelivered:  {BookingCompleted},
}

// CanTransition reports whether the status flow allows from -> to.
func (from BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAssigned, BookingDelivering, BookingDelivered, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Blocking reports whether a booking in this status occupies the trainer's time.
func (s BookingStatus) Blocking() bool {
	return s != BookingCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID                int64         `json:"id" gorm:"primaryKey"`
	ClientID          int64         `json:"client_id" gorm:"not null;index"`
	TrainerID         int64         `json:"trainer_id" gorm:"not null;index"`
	PricingID         *int64        `json:"pricing_id,omitempty"`
	TrainingRequestID *int64        `json:"training_request_id,omitempty" gorm:"index"`
	StartTime         time.Time     `json:"start_time" gorm:"not null;index"`
	EndTime           time.Time     `json:"end_time" gorm:"not null"`
	Sessions          int           `json:"sessions" gorm:"not null;default:1"`
	TotalPrice        float64       `json:"total_price" gorm:"not null"`
	CommissionRate    float64       `json:"commission_rate" gorm:"not null"`
	CommissionAmount  float64       `json:"commission_amount" gorm:"not null"`
	TrainerNet        float64       `json:"trainer_net" gorm:"not null"`
	Status            BookingStatus `json:"status" gorm:"size:16;not null;index"`
	PaymentStatus     PaymentStatus `json:"payment_status" gorm:"size:16;not null"`
	Notes             string        `json:"notes,omitempty" gorm:"type:text"`
	CancelReason      string        `json:"cancellation_reason,omitempty" gorm:"column:cancellation_reason;type:text"`
	CancelledAt       *time.Time    `json:"cancelled_at,omitempty"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	Trainer *Trainer `json:"trainer,omitempty" gorm:"foreignKey:TrainerID"`
	Client  *User    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (Booking) TableName() string { return "bookings" }

// IsParticipant reports whether userID is the booking's client or the trainer's user.
func (b *Booking) IsParticipant(userID, trainerUserID int64) bool {
	return b.ClientID == userID || trainerUserID == userID
}
