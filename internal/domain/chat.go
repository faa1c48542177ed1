package domain

import "time"

// Message belongs to the conversation of one booking.
type Message struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	BookingID   int64      `json:"booking_id" gorm:"not null;index"`
	SenderID    int64      `json:"sender_id" gorm:"not null"`
	RecipientID int64      `json:"recipient_id" gorm:"not null;index"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
