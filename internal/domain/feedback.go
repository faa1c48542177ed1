package domain

import "time"

// FeedbackLink lets an external respondent rate a completed booking once.
type FeedbackLink struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	BookingID int64      `json:"booking_id" gorm:"not null;index"`
	TrainerID int64      `json:"trainer_id" gorm:"not null;index"`
	Token     string     `json:"token" gorm:"size:36;not null;uniqueIndex"`
	CreatedBy int64      `json:"created_by" gorm:"not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null;index"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (FeedbackLink) TableName() string { return "feedback_links" }

func (l *FeedbackLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

type FeedbackResponse struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	LinkID         int64     `json:"link_id" gorm:"not null;uniqueIndex"`
	BookingID      int64     `json:"booking_id" gorm:"not null;index"`
	TrainerID      int64     `json:"trainer_id" gorm:"not null;index"`
	RespondentName string    `json:"respondent_name" gorm:"size:255"`
	Rating         int       `json:"rating" gorm:"not null"`
	Comment        string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (FeedbackResponse) TableName() string { return "feedback_responses" }
