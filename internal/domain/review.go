package domain

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	BookingID int64     `json:"booking_id" gorm:"not null;uniqueIndex"`
	ClientID  int64     `json:"client_id" gorm:"not null;index"`
	TrainerID int64     `json:"trainer_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	IsHidden  bool      `json:"is_hidden" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client *Profile `json:"client,omitempty" gorm:"foreignKey:ClientID;references:UserID"`
}

func (Review) TableName() string { return "reviews" }
