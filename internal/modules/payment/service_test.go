package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type mockBookingReader struct {
	booking *domain.Booking
}

func (m *mockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.booking == nil || m.booking.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.booking, nil
}

type mockPaymentRepo struct {
	payment       *domain.Payment
	created       []*domain.Payment
	failedCalls   int
	markPaidCalls int
	alreadyPaid   bool
	refundErr     error
	failedErr     error
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	m.created = append(m.created, p)
	return nil
}

func (m *mockPaymentRepo) GetByInvoice(ctx context.Context, invoiceID int64) (*domain.Payment, error) {
	if m.payment == nil || m.payment.InvoiceID != invoiceID {
		return nil, gorm.ErrRecordNotFound
	}
	return m.payment, nil
}

func (m *mockPaymentRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return []domain.Payment{}, nil
}

func (m *mockPaymentRepo) MarkFailed(ctx context.Context, invoiceID int64, rawBody, reason string) error {
	m.failedCalls++
	return m.failedErr
}

func (m *mockPaymentRepo) MarkPaidIdempotent(ctx context.Context, invoiceID int64, rawBody string, paidAt time.Time) (bool, error) {
	m.markPaidCalls++
	return !m.alreadyPaid, nil
}

func (m *mockPaymentRepo) Refund(ctx context.Context, bookingID int64) error {
	return m.refundErr
}

func testService(repo *mockPaymentRepo, b *domain.Booking) *Service {
	return NewService(repo, &mockBookingReader{booking: b}, Config{
		Merchant: "m",
		Secret:   "s3cret",
		BaseURL:  "https://checkout.example.com/pay",
	}, nil)
}

func TestInitCheckout_BuildsSignedURL(t *testing.T) {
	repo := &mockPaymentRepo{}
	b := &domain.Booking{ID: 5, ClientID: 9, TotalPrice: 2500, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid}
	svc := testService(repo, b)

	resp, err := svc.InitCheckout(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, "2500.00", resp.Amount)
	require.Len(t, repo.created, 1)
	assert.Equal(t, resp.InvoiceID, repo.created[0].InvoiceID)

	u, err := url.Parse(resp.CheckoutURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "m", q.Get("merchant"))
	assert.Equal(t, svc.sign("2500.00", resp.InvoiceID), q.Get("signature"))
	assert.Equal(t, strconv.FormatInt(resp.InvoiceID, 10), q.Get("invoice_id"))
}

func TestInitCheckout_Rejections(t *testing.T) {
	ctx := context.Background()

	b := &domain.Booking{ID: 5, ClientID: 9, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid}
	_, err := testService(&mockPaymentRepo{}, b).InitCheckout(ctx, 5, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	paid := &domain.Booking{ID: 5, ClientID: 9, Status: domain.BookingPending, PaymentStatus: domain.PaymentPaid}
	_, err = testService(&mockPaymentRepo{}, paid).InitCheckout(ctx, 5, 9)
	assert.ErrorIs(t, err, ErrNotPayable)

	cancelled := &domain.Booking{ID: 5, ClientID: 9, Status: domain.BookingCancelled, PaymentStatus: domain.PaymentUnpaid}
	_, err = testService(&mockPaymentRepo{}, cancelled).InitCheckout(ctx, 5, 9)
	assert.ErrorIs(t, err, ErrNotPayable)

	_, err = testService(&mockPaymentRepo{}, nil).InitCheckout(ctx, 5, 9)
	assert.ErrorIs(t, err, ErrNotFound)

	unconfigured := NewService(&mockPaymentRepo{}, &mockBookingReader{booking: b}, Config{}, nil)
	_, err = unconfigured.InitCheckout(ctx, 5, 9)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHandleCallback_Paid(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{InvoiceID: 99, Amount: "100.00", BookingID: 1}}
	svc := testService(repo, nil)

	sig := strings.ToUpper(svc.sign("100", 99))
	ack, err := svc.HandleCallback(context.Background(), "100", 99, sig, "raw")
	require.NoError(t, err)
	assert.Equal(t, "OK99", ack)
	assert.Equal(t, 1, repo.markPaidCalls)

	repo.alreadyPaid = true
	ack, err = svc.HandleCallback(context.Background(), "100", 99, sig, "raw")
	require.NoError(t, err)
	assert.Equal(t, "OK99", ack)
}

func TestHandleCallback_InvalidSignature(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{InvoiceID: 99, Amount: "100.00", BookingID: 1}}
	svc := testService(repo, nil)

	_, err := svc.HandleCallback(context.Background(), "100.00", 99, "deadbeef", "raw")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if repo.markPaidCalls != 0 {
		t.Fatalf("expected MarkPaidIdempotent not called")
	}
}

func TestHandleCallback_AmountMismatch(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{InvoiceID: 99, Amount: "100.00", BookingID: 1}}
	svc := testService(repo, nil)

	sig := svc.sign("50.00", 99)
	_, err := svc.HandleCallback(context.Background(), "50.00", 99, sig, "raw")
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
	if repo.markPaidCalls != 0 {
		t.Fatalf("expected MarkPaidIdempotent not called")
	}
	if repo.failedCalls == 0 {
		t.Fatalf("expected MarkFailed called")
	}
}

func TestHandleCallback_MarkFailedErrorIsLogged(t *testing.T) {
	repo := &mockPaymentRepo{
		payment:   &domain.Payment{InvoiceID: 99, Amount: "100.00", BookingID: 1},
		failedErr: errors.New("db down"),
	}
	var lines []string
	svc := NewService(repo, &mockBookingReader{}, Config{Merchant: "m", Secret: "s3cret"}, func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	_, err := svc.HandleCallback(context.Background(), "50.00", 99, svc.sign("50.00", 99), "raw")
	assert.ErrorIs(t, err, ErrAmountMismatch)

	var logged bool
	for _, l := range lines {
		assert.NotContains(t, l, "level=")
		if strings.Contains(l, "invoice_id=99") && strings.Contains(l, "db down") {
			logged = true
		}
	}
	assert.True(t, logged, "lines: %v", lines)
}

func TestHandleCallback_UnknownInvoice(t *testing.T) {
	svc := testService(&mockPaymentRepo{}, nil)
	sig := svc.sign("10.00", 1)
	_, err := svc.HandleCallback(context.Background(), "10.00", 1, sig, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefund_NotPaid(t *testing.T) {
	svc := testService(&mockPaymentRepo{refundErr: repository.ErrStale}, nil)
	_, err := svc.Refund(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotRefundable)
}

func TestAmountEqual(t *testing.T) {
	assert.True(t, amountEqual("300", "300.00"))
	assert.True(t, amountEqual(" 12.5 ", "12.50"))
	assert.False(t, amountEqual("12.51", "12.50"))
	assert.False(t, amountEqual("abc", "1"))
}
