package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type TrainerStatus string

const (
	TrainerPending   TrainerStatus = "pending"
	TrainerApproved  TrainerStatus = "approved"
	TrainerRejected  TrainerStatus = "rejected"
	TrainerSuspended TrainerStatus = "suspended"
)

type Trainer struct {
	ID                int64                       `json:"id" gorm:"primaryKey"`
	UserID            int64                       `json:"user_id" gorm:"not null;uniqueIndex"`
	Headline          string                      `json:"headline" gorm:"size:255"`
	Specialties       datatypes.JSONSlice[string] `json:"specialties"`
	City              string                      `json:"city,omitempty" gorm:"size:128;index"`
	YearsOfExperience int                         `json:"years_of_experience"`
	Photos            datatypes.JSONSlice[string] `json:"photos"`
	Status            TrainerStatus               `json:"status" gorm:"size:16;not null;index"`
	StatusReason      string                      `json:"status_reason,omitempty" gorm:"type:text"`
	ApprovedAt        *time.Time                  `json:"approved_at,omitempty"`
	ApprovedBy        *int64                      `json:"approved_by,omitempty"`
	RatingAvg         float64                     `json:"rating_avg" gorm:"not null;default:0"`
	RatingCount       int                         `json:"rating_count" gorm:"not null;default:0"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`

	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Profile *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID;references:UserID"`
	Pricing []Pricing `json:"pricing,omitempty" gorm:"foreignKey:TrainerID"`

	// Cheapest active pricing row, filled by list queries.
	FromPrice *float64 `json:"from_price,omitempty" gorm:"-"`
}

func (Trainer) TableName() string { return "trainers" }

func (t *Trainer) Bookable() bool {
	return t.Status == TrainerApproved
}

type SessionType string

const (
	SessionSingle  SessionType = "single"
	SessionPackage SessionType = "package"
)

// Pricing is one row of a trainer's price list.
type Pricing struct {
	ID              int64       `json:"id" gorm:"primaryKey"`
	TrainerID       int64       `json:"trainer_id" gorm:"not null;index"`
	Title           string      `json:"title" gorm:"size:255;not null"`
	SessionType     SessionType `json:"session_type" gorm:"size:16;not null"`
	Sessions        int         `json:"sessions" gorm:"not null;default:1"`
	DurationMinutes int         `json:"duration_minutes" gorm:"not null"`
	Price           float64     `json:"price" gorm:"not null"`
	Active          bool        `json:"active" gorm:"not null"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Pricing) TableName() string { return "trainer_pricing" }

// AvailabilitySlot is a weekly recurring window, times are "HH:MM" in UTC.
type AvailabilitySlot struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TrainerID int64     `json:"trainer_id" gorm:"not null;index"`
	Weekday   int       `json:"weekday" gorm:"not null"`
	StartTime string    `json:"start_time" gorm:"size:5;not null"`
	EndTime   string    `json:"end_time" gorm:"size:5;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (AvailabilitySlot) TableName() string { return "trainer_availability" }

// NormalizeSpecialties lowercases, trims and de-duplicates specialty tags.
func NormalizeSpecialties(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
