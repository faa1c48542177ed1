package ledger

import (
	"testing"

	"trainerhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name       string
		gross      float64
		rate       float64
		commission float64
		net        float64
	}{
		{"round number", 100, 0.15, 15, 85},
		{"half cent rounds up", 0.10, 0.05, 0.01, 0.09},
		{"zero rate", 59.99, 0, 0, 59.99},
		{"max rate", 80, 0.5, 40, 40},
		{"fractional gross", 33.33, 0.1, 3.33, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Split(tc.gross, tc.rate)
			require.NoError(t, err)
			assert.Equal(t, tc.commission, s.Commission)
			assert.Equal(t, tc.net, s.Net)
			assert.Equal(t, ToCents(s.Gross), ToCents(s.Commission)+ToCents(s.Net))
		})
	}
}

func TestSplit_Invalid(t *testing.T) {
	_, err := Split(100, 0.6)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = Split(100, -0.1)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = Split(-1, 0.1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSummarize(t *testing.T) {
	payouts := []domain.TrainerPayout{
		{Gross: 100, Commission: 15, Net: 85, Status: domain.PayoutPending},
		{Gross: 50, Commission: 7.5, Net: 42.5, Status: domain.PayoutBatched},
		{Gross: 20.1, Commission: 3.02, Net: 17.08, Status: domain.PayoutPaid},
		{Gross: 999, Commission: 1, Net: 998, Status: domain.PayoutCancelled},
	}

	s := Summarize(payouts)
	assert.Equal(t, 85.0, s.Pending)
	assert.Equal(t, 42.5, s.Batched)
	assert.Equal(t, 17.08, s.Paid)
	assert.Equal(t, 144.58, s.LifetimeNet)
	assert.Equal(t, 170.1, s.LifetimeGross)
	assert.Equal(t, 25.52, s.LifetimeCommission)
	assert.Equal(t, 3, s.Count)
}

func TestPayoutFor(t *testing.T) {
	b := &domain.Booking{ID: 9, TrainerID: 4, TotalPrice: 120, CommissionAmount: 18, TrainerNet: 102}
	p := PayoutFor(b)
	assert.Equal(t, int64(9), p.BookingID)
	assert.Equal(t, int64(4), p.TrainerID)
	assert.Equal(t, 102.0, p.Net)
	assert.Equal(t, domain.PayoutPending, p.Status)
}

func TestSumNet(t *testing.T) {
	assert.Equal(t, 0.3, SumNet([]domain.TrainerPayout{{Net: 0.1}, {Net: 0.2}}))
}
