package admin

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrReasonRequired       = errors.New("reason is required")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidTrainerStatus = errors.New("trainer is not in a state that allows this action")
	ErrCannotBanAdmin       = errors.New("admins cannot be banned")
)
