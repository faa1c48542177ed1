package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

// Config holds the hosted checkout credentials.
type Config struct {
	Merchant string
	Secret   string
	BaseURL  string
}

type Service struct {
	payments paymentRepo
	bookings bookingReader
	cfg      Config
	loggerf  func(format string, args ...interface{})
	now      func() time.Time
}

func NewService(payments paymentRepo, bookings bookingReader, cfg Config, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		cfg:      cfg,
		loggerf:  loggerf,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// InitCheckout creates a checkout attempt for an unpaid booking of the client.
func (s *Service) InitCheckout(ctx context.Context, bookingID, clientID int64) (*CheckoutResponse, error) {
	if s.cfg.Merchant == "" || s.cfg.Secret == "" {
		return nil, ErrNotConfigured
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("booking check failed: %w", err)
	}
	if b.ClientID != clientID {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingCancelled || b.PaymentStatus != domain.PaymentUnpaid {
		return nil, ErrNotPayable
	}

	invoiceID := s.now().UnixNano()
	amount := formatAmount(b.TotalPrice)
	signature := s.sign(amount, invoiceID)

	u := url.Values{}
	u.Set("merchant", s.cfg.Merchant)
	u.Set("amount", amount)
	u.Set("invoice_id", strconv.FormatInt(invoiceID, 10))
	u.Set("description", fmt.Sprintf("Training booking #%d", b.ID))
	u.Set("signature", signature)
	checkoutURL := s.cfg.BaseURL + "?" + u.Encode()

	p := &domain.Payment{
		BookingID:   b.ID,
		InvoiceID:   invoiceID,
		Amount:      amount,
		Status:      domain.CheckoutCreated,
		Signature:   signature,
		CheckoutURL: checkoutURL,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment failed: %w", err)
	}
	s.loggerf("checkout created booking_id=%d invoice_id=%d amount=%s", b.ID, invoiceID, amount)

	return &CheckoutResponse{
		InvoiceID:   invoiceID,
		Amount:      amount,
		CheckoutURL: checkoutURL,
		Status:      string(domain.CheckoutCreated),
	}, nil
}

// HandleCallback processes the provider's server-to-server notification. A
// repeated callback for a paid invoice is acknowledged without side effects.
func (s *Service) HandleCallback(ctx context.Context, amount string, invoiceID int64, signature, rawBody string) (string, error) {
	valid := s.validSignature(amount, invoiceID, signature)
	s.loggerf("checkout callback signature validation invoice_id=%d signature_valid=%t", invoiceID, valid)
	if !valid {
		return "", ErrInvalidSignature
	}

	p, err := s.payments.GetByInvoice(ctx, invoiceID)
	if err != nil {
		if database.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if !amountEqual(amount, p.Amount) {
		reason := fmt.Sprintf("amount mismatch callback=%s expected=%s", amount, p.Amount)
		if err := s.payments.MarkFailed(ctx, invoiceID, rawBody, reason); err != nil {
			s.loggerf("mark payment failed invoice_id=%d err=%v", invoiceID, err)
		}
		return "", ErrAmountMismatch
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, invoiceID, rawBody, s.now())
	if err != nil {
		return "", err
	}
	if !changed {
		s.loggerf("idempotent callback already paid invoice_id=%d", invoiceID)
	}
	return "OK" + strconv.FormatInt(invoiceID, 10), nil
}

// Status is shown on the page the client returns to after checkout.
func (s *Service) Status(ctx context.Context, invoiceID int64) (*StatusResponse, error) {
	p, err := s.payments.GetByInvoice(ctx, invoiceID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &StatusResponse{InvoiceID: p.InvoiceID, BookingID: p.BookingID, Status: string(p.Status)}, nil
}

// ListForBooking returns checkout attempts visible to the booking's participants.
func (s *Service) ListForBooking(ctx context.Context, bookingID, userID int64, isAdmin bool) ([]domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	trainerUserID := int64(0)
	if b.Trainer != nil {
		trainerUserID = b.Trainer.UserID
	}
	if !isAdmin && !b.IsParticipant(userID, trainerUserID) {
		return nil, ErrForbidden
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

// Refund marks a paid booking refunded and cancels its unbatched payout.
func (s *Service) Refund(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	if err := s.payments.Refund(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrNotRefundable
		}
		return nil, err
	}
	s.loggerf("booking refunded booking_id=%d", bookingID)
	return s.bookings.GetByID(ctx, bookingID)
}

// sign is HMAC-SHA256 over "merchant:amount:invoice" as lowercase hex.
func (s *Service) sign(amount string, invoiceID int64) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.Secret))
	mac.Write([]byte(strings.Join([]string{s.cfg.Merchant, amount, strconv.FormatInt(invoiceID, 10)}, ":")))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Service) validSignature(amount string, invoiceID int64, signature string) bool {
	expected := s.sign(strings.TrimSpace(amount), invoiceID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func amountEqual(a, b string) bool {
	ar, ok := new(big.Rat).SetString(strings.TrimSpace(a))
	if !ok {
		return false
	}
	br, ok := new(big.Rat).SetString(strings.TrimSpace(b))
	if !ok {
		return false
	}
	return ar.Cmp(br) == 0
}
