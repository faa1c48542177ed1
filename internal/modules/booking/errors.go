package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrTrainerNotFound         = errors.New("trainer not found")
	ErrTrainerNotBookable      = errors.New("trainer is not accepting bookings")
	ErrPricingUnavailable      = errors.New("pricing is not available")
	ErrStartTooSoon            = errors.New("start time is too soon")
	ErrSlotTaken               = errors.New("time slot is already booked")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrReasonRequired          = errors.New("cancellation reason is required")
	ErrNotPaid                 = errors.New("booking is not paid")
)
