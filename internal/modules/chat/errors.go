package chat

import "errors"

var (
	ErrInvalidBody    = errors.New("message body must be 1..4000 characters")
	ErrNotFound       = errors.New("booking not found")
	ErrNotParticipant = errors.New("not a participant of this booking")
)
