package domain

import "time"

type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutBatched   PayoutStatus = "batched"
	PayoutPaid      PayoutStatus = "paid"
	PayoutCancelled PayoutStatus = "cancelled"
)

// TrainerPayout is the amount owed to a trainer for one completed booking.
type TrainerPayout struct {
	ID         int64        `json:"id" gorm:"primaryKey"`
	BookingID  int64        `json:"booking_id" gorm:"not null;uniqueIndex"`
	TrainerID  int64        `json:"trainer_id" gorm:"not null;index"`
	Gross      float64      `json:"gross" gorm:"not null"`
	Commission float64      `json:"commission" gorm:"not null"`
	Net        float64      `json:"net" gorm:"not null"`
	Status     PayoutStatus `json:"status" gorm:"size:16;not null;index"`
	BatchID    *int64       `json:"batch_id,omitempty" gorm:"index"`
	PaidAt     *time.Time   `json:"paid_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (TrainerPayout) TableName() string { return "trainer_payouts" }

type BatchStatus string

const (
	BatchOpen BatchStatus = "open"
	BatchPaid BatchStatus = "paid"
)

type PayoutBatch struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	CreatedBy   int64       `json:"created_by" gorm:"not null"`
	PayoutCount int         `json:"payout_count" gorm:"not null"`
	TotalNet    float64     `json:"total_net" gorm:"not null"`
	Status      BatchStatus `json:"status" gorm:"size:16;not null;index"`
	Reference   string      `json:"reference,omitempty" gorm:"size:255"`
	PaidAt      *time.Time  `json:"paid_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Payouts []TrainerPayout `json:"payouts,omitempty" gorm:"foreignKey:BatchID"`
}

func (PayoutBatch) TableName() string { return "payout_batches" }
