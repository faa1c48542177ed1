package trainer

import "trainerhub/internal/domain"

type ListQuery struct {
	Specialty string
	City      string
	MinRating *float64
	MaxPrice  *float64
	Query     string
	Sort      string
	Page      int
	Limit     int
}

type UpdateTrainerRequest struct {
	Headline          *string   `json:"headline" binding:"omitempty,min=3,max=255"`
	City              *string   `json:"city" binding:"omitempty,max=128"`
	Specialties       *[]string `json:"specialties" binding:"omitempty,max=20,dive,min=2,max=64"`
	YearsOfExperience *int      `json:"years_of_experience" binding:"omitempty,gte=0,lte=70"`
	Photos            *[]string `json:"photos" binding:"omitempty,max=20,dive,max=1024"`
}

type PricingRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	SessionType     string  `json:"session_type" validate:"required,oneof=single package"`
	Sessions        int     `json:"sessions" validate:"gte=1,lte=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=15,lte=480"`
	Price           float64 `json:"price" validate:"gt=0"`
	Active          *bool   `json:"active"`
}

type SlotInput struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

type ReplaceAvailabilityRequest struct {
	Slots []SlotInput `json:"slots" binding:"max=100"`
}

// Detail is the public trainer page.
type Detail struct {
	Trainer      *domain.Trainer           `json:"trainer"`
	Pricing      []domain.Pricing          `json:"pricing"`
	Availability []domain.AvailabilitySlot `json:"availability"`
	Reviews      []domain.Review           `json:"reviews"`
}
