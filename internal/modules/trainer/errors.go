package trainer

import "errors"

var (
	ErrNotFound         = errors.New("trainer not found")
	ErrNoTrainerProfile = errors.New("user has no trainer profile")
	ErrForbidden        = errors.New("forbidden")
	ErrPricingNotFound  = errors.New("pricing not found")
	ErrInvalidPricing   = errors.New("invalid pricing")
	ErrInvalidSlot      = errors.New("invalid availability slot")
	ErrOverlappingSlots = errors.New("availability slots overlap")
)
