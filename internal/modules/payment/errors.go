package payment

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAmountMismatch   = errors.New("amount mismatch")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotPayable       = errors.New("booking cannot be paid")
	ErrNotRefundable    = errors.New("booking is not paid")
	ErrNotConfigured    = errors.New("checkout credentials are not configured")
)
