package domain

import "time"

type Job struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Location    string    `json:"location,omitempty" gorm:"size:128"`
	Description string    `json:"description" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

type SuccessStory struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	ClientName string    `json:"client_name" gorm:"size:255;not null"`
	TrainerID  *int64    `json:"trainer_id,omitempty"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Story      string    `json:"story" gorm:"type:text;not null"`
	ImageURL   string    `json:"image_url,omitempty"`
	Published  bool      `json:"published" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (SuccessStory) TableName() string { return "success_stories" }
