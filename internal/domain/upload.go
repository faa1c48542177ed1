package domain

import "time"

type Upload struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user_id" gorm:"not null;index"`
	OriginalName string    `json:"original_name" gorm:"size:255"`
	MimeType     string    `json:"mime_type" gorm:"size:64"`
	Size         int64     `json:"size"`
	Path         string    `json:"-" gorm:"not null"`
	URL          string    `json:"url" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
