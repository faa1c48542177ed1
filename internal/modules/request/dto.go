package request

import "time"

type CreateRequest struct {
	Title          string     `json:"title" binding:"required,max=255"`
	Description    string     `json:"description" binding:"max=5000"`
	Specialty      string     `json:"specialty" binding:"max=64"`
	City           string     `json:"city" binding:"max=128"`
	Budget         float64    `json:"budget" binding:"gte=0"`
	PreferredStart *time.Time `json:"preferred_start"`
}

type ApplyRequest struct {
	Message       string  `json:"message" binding:"max=2000"`
	ProposedPrice float64 `json:"proposed_price" binding:"required,gt=0"`
}

type AcceptRequest struct {
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,gte=15,lte=480"`
}

type OpenFilter struct {
	Specialty string
	City      string
	Page      int
	Limit     int
}
