package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Report is the platform revenue picture for a period.
type Report struct {
	From               time.Time        `json:"from"`
	To                 time.Time        `json:"to"`
	GrossBooked        float64          `json:"gross_booked"`
	ConfirmedRevenue   float64          `json:"confirmed_revenue"`
	CommissionEarned   float64          `json:"commission_earned"`
	OutstandingPayouts float64          `json:"outstanding_payouts"`
	PaidOutPayouts     float64          `json:"paid_out_payouts"`
	BookingsByStatus   map[string]int64 `json:"bookings_by_status"`
	PaidBookings       int64            `json:"paid_bookings"`
	CompletedPaidCount int64            `json:"completed_paid_count"`
}

type Reporter struct {
	db *sqlx.DB
}

func NewReporter(db *sqlx.DB) *Reporter {
	return &Reporter{db: db}
}

type statusRow struct {
	Status string  `db:"status"`
	Count  int64   `db:"cnt"`
	Gross  float64 `db:"gross"`
}

type confirmedRow struct {
	Count      int64   `db:"cnt"`
	Gross      float64 `db:"gross"`
	Commission float64 `db:"commission"`
}

type payoutRow struct {
	Status string  `db:"status"`
	Net    float64 `db:"net"`
}

// Revenue computes the report over bookings whose start time is in [from, to).
// Confirmed revenue counts bookings that are completed and paid.
func (r *Reporter) Revenue(ctx context.Context, from, to time.Time) (*Report, error) {
	from, to = from.UTC(), to.UTC()
	rep := &Report{From: from, To: to, BookingsByStatus: map[string]int64{}}

	var rows []statusRow
	q := r.db.Rebind(`
SELECT status, COUNT(1) AS cnt, COALESCE(SUM(total_price), 0) AS gross
FROM bookings
WHERE start_time >= ? AND start_time < ?
GROUP BY status`)
	if err := r.db.SelectContext(ctx, &rows, q, from, to); err != nil {
		return nil, fmt.Errorf("bookings by status: %w", err)
	}
	var gross int64
	for _, row := range rows {
		rep.BookingsByStatus[row.Status] = row.Count
		if row.Status != "cancelled" {
			gross += ToCents(row.Gross)
		}
	}
	rep.GrossBooked = FromCents(gross)

	var confirmed confirmedRow
	q = r.db.Rebind(`
SELECT COUNT(1) AS cnt,
       COALESCE(SUM(total_price), 0) AS gross,
       COALESCE(SUM(commission_amount), 0) AS commission
FROM bookings
WHERE status = 'completed' AND payment_status = 'paid'
  AND start_time >= ? AND start_time < ?`)
	if err := r.db.GetContext(ctx, &confirmed, q, from, to); err != nil {
		return nil, fmt.Errorf("confirmed revenue: %w", err)
	}
	rep.ConfirmedRevenue = Round2(confirmed.Gross)
	rep.CommissionEarned = Round2(confirmed.Commission)
	rep.CompletedPaidCount = confirmed.Count

	q = r.db.Rebind(`
SELECT COUNT(1) FROM bookings
WHERE payment_status = 'paid' AND start_time >= ? AND start_time < ?`)
	if err := r.db.GetContext(ctx, &rep.PaidBookings, q, from, to); err != nil {
		return nil, fmt.Errorf("paid bookings: %w", err)
	}

	var payouts []payoutRow
	if err := r.db.SelectContext(ctx, &payouts, `
SELECT status, COALESCE(SUM(net), 0) AS net
FROM trainer_payouts
GROUP BY status`); err != nil {
		return nil, fmt.Errorf("payouts by status: %w", err)
	}
	var outstanding int64
	for _, p := range payouts {
		switch p.Status {
		case "pending", "batched":
			outstanding += ToCents(p.Net)
		case "paid":
			rep.PaidOutPayouts = Round2(p.Net)
		}
	}
	rep.OutstandingPayouts = FromCents(outstanding)

	return rep, nil
}
