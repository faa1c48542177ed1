package booking

import (
	"time"

	"trainerhub/internal/domain"
)

type CreateBookingRequest struct {
	TrainerID int64     `json:"trainer_id" binding:"required,gt=0"`
	PricingID int64     `json:"pricing_id" binding:"required,gt=0"`
	StartTime time.Time `json:"start_time" binding:"required"`
	Notes     string    `json:"notes" binding:"max=2000"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=1000"`
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

type ListQuery struct {
	Status string
	Page   int
	Limit  int
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	TrainerID int64      `json:"trainer_id"`
	Date      string     `json:"date"`
	Free      []TimeSlot `json:"free"`
	Busy      []TimeSlot `json:"busy"`
}
