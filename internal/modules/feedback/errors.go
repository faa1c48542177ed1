package feedback

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("feedback link not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrForbidden           = errors.New("forbidden")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrLinkExpired         = errors.New("feedback link expired")
	ErrLinkUsed            = errors.New("feedback link already used")
)
