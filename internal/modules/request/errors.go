package request

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("training request not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrForbidden           = errors.New("forbidden")
	ErrTrainerNotApproved  = errors.New("trainer profile is not approved")
	ErrRequestNotOpen      = errors.New("training request is not open")
	ErrAlreadyApplied      = errors.New("trainer already applied to this request")
	ErrOwnRequest          = errors.New("cannot apply to own request")
	ErrApplicationClosed   = errors.New("application is no longer pending")
	ErrStartTooSoon        = errors.New("start time is too soon")
	ErrSlotTaken           = errors.New("trainer is busy at the selected time")
)
