package payout

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNoTrainerProfile = errors.New("trainer profile not found")
	ErrBatchNotFound    = errors.New("payout batch not found")
	ErrBatchAlreadyPaid = errors.New("payout batch already paid")
	ErrPayoutNotPending = errors.New("some payouts are no longer pending")
	ErrBelowMinimum     = errors.New("trainer pending total is below the minimum payout amount")
	ErrNothingToBatch   = errors.New("no eligible pending payouts")
)
