// Package ledger owns every money computation of the marketplace: commission
// splits, payout summaries and revenue reports. Amounts are handled in integer
// cents internally and exposed as float64 with two decimals.
package ledger

import (
	"errors"
	"math"

	"trainerhub/internal/domain"
)

const MaxCommissionRate = 0.5

var (
	ErrInvalidRate   = errors.New("commission rate must be within [0, 0.5]")
	ErrInvalidAmount = errors.New("amount must not be negative")
)

// Shares is a gross amount divided between the platform and the trainer.
type Shares struct {
	Gross      float64 `json:"gross"`
	Rate       float64 `json:"rate"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
}

func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// Round2 rounds half away from zero to two decimals.
func Round2(amount float64) float64 {
	return FromCents(ToCents(amount))
}

func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > MaxCommissionRate {
		return ErrInvalidRate
	}
	return nil
}

// Split computes commission = round(gross*rate) and net = gross - commission,
// so commission + net always equals gross to the cent.
func Split(gross, rate float64) (Shares, error) {
	if err := ValidateRate(rate); err != nil {
		return Shares{}, err
	}
	if gross < 0 || math.IsNaN(gross) {
		return Shares{}, ErrInvalidAmount
	}

	grossCents := ToCents(gross)
	commissionCents := int64(math.Round(float64(grossCents) * rate))
	return Shares{
		Gross:      FromCents(grossCents),
		Rate:       rate,
		Commission: FromCents(commissionCents),
		Net:        FromCents(grossCents - commissionCents),
	}, nil
}

// PackagePrice is the price charged for booking one pricing row.
func PackagePrice(p *domain.Pricing) float64 {
	return Round2(p.Price)
}

// Summary aggregates a trainer's payouts by status.
type Summary struct {
	Pending            float64 `json:"pending"`
	Batched            float64 `json:"batched"`
	Paid               float64 `json:"paid"`
	LifetimeNet        float64 `json:"lifetime_net"`
	LifetimeGross      float64 `json:"lifetime_gross"`
	LifetimeCommission float64 `json:"lifetime_commission"`
	Count              int     `json:"count"`
}

// Summarize ignores cancelled payouts.
func Summarize(payouts []domain.TrainerPayout) Summary {
	var pending, batched, paid, gross, commission int64
	count := 0
	for _, p := range payouts {
		if p.Status == domain.PayoutCancelled {
			continue
		}
		count++
		net := ToCents(p.Net)
		gross += ToCents(p.Gross)
		commission += ToCents(p.Commission)
		switch p.Status {
		case domain.PayoutPending:
			pending += net
		case domain.PayoutBatched:
			batched += net
		case domain.PayoutPaid:
			paid += net
		}
	}
	return Summary{
		Pending:            FromCents(pending),
		Batched:            FromCents(batched),
		Paid:               FromCents(paid),
		LifetimeNet:        FromCents(pending + batched + paid),
		LifetimeGross:      FromCents(gross),
		LifetimeCommission: FromCents(commission),
		Count:              count,
	}
}

// SumNet totals the net amount of the given payouts.
func SumNet(payouts []domain.TrainerPayout) float64 {
	var total int64
	for _, p := range payouts {
		total += ToCents(p.Net)
	}
	return FromCents(total)
}

// PayoutFor builds the payout owed for a completed booking from its stored split.
func PayoutFor(b *domain.Booking) domain.TrainerPayout {
	return domain.TrainerPayout{
		BookingID:  b.ID,
		TrainerID:  b.TrainerID,
		Gross:      Round2(b.TotalPrice),
		Commission: Round2(b.CommissionAmount),
		Net:        Round2(b.TrainerNet),
		Status:     domain.PayoutPending,
	}
}
