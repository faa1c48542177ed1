package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"trainerhub/internal/domain"
	"trainerhub/internal/ledger"
)

// Settings is the typed view of platform_settings.
type Settings struct {
	CommissionRate       float64 `json:"commission_rate"`
	MinPayoutAmount      float64 `json:"min_payout_amount"`
	FeedbackLinkTTLHours int     `json:"feedback_link_ttl_hours"`
	BookingLeadMinutes   int     `json:"booking_lead_minutes"`
}

func (s Settings) FeedbackLinkTTL() time.Duration {
	return time.Duration(s.FeedbackLinkTTLHours) * time.Hour
}

func (s Settings) BookingLead() time.Duration {
	return time.Duration(s.BookingLeadMinutes) * time.Minute
}

// Defaults applies when a key has no row yet.
func Defaults(commissionRate float64) Settings {
	return Settings{
		CommissionRate:       commissionRate,
		MinPayoutAmount:      0,
		FeedbackLinkTTLHours: 168,
		BookingLeadMinutes:   60,
	}
}

type Service struct {
	repo     settingsRepository
	defaults Settings
}

func NewService(repo settingsRepository, defaults Settings) *Service {
	return &Service{repo: repo, defaults: defaults}
}

// Current merges stored rows over the defaults. Unparseable rows are ignored.
func (s *Service) Current(ctx context.Context) (Settings, error) {
	out := s.defaults
	rows, err := s.repo.All(ctx)
	if err != nil {
		return out, err
	}
	for _, row := range rows {
		_ = apply(&out, row.Key, json.RawMessage(row.Value))
	}
	return out, nil
}

func (s *Service) CommissionRate(ctx context.Context) (float64, error) {
	cur, err := s.Current(ctx)
	return cur.CommissionRate, err
}

// Update validates every key before writing any of them.
func (s *Service) Update(ctx context.Context, adminID int64, patch map[string]json.RawMessage) (Settings, error) {
	cur, err := s.Current(ctx)
	if err != nil {
		return cur, err
	}
	if len(patch) == 0 {
		return cur, nil
	}

	rows := make([]domain.PlatformSetting, 0, len(patch))
	for key, raw := range patch {
		if err := apply(&cur, key, raw); err != nil {
			return Settings{}, err
		}
		by := adminID
		rows = append(rows, domain.PlatformSetting{Key: key, Value: string(raw), UpdatedBy: &by})
	}
	if err := s.repo.Upsert(ctx, rows); err != nil {
		return Settings{}, err
	}
	return cur, nil
}

func apply(dst *Settings, key string, raw json.RawMessage) error {
	switch key {
	case domain.SettingCommissionRate:
		v, err := decodeFloat(key, raw)
		if err != nil {
			return err
		}
		if err := ledger.ValidateRate(v); err != nil {
			return fmt.Errorf("%w: %s must be within [0, %.1f]", ErrInvalidValue, key, ledger.MaxCommissionRate)
		}
		dst.CommissionRate = v
	case domain.SettingMinPayoutAmount:
		v, err := decodeFloat(key, raw)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, key)
		}
		dst.MinPayoutAmount = ledger.Round2(v)
	case domain.SettingFeedbackLinkTTL:
		v, err := decodeInt(key, raw, 1, 2160)
		if err != nil {
			return err
		}
		dst.FeedbackLinkTTLHours = v
	case domain.SettingBookingLeadMinutes:
		v, err := decodeInt(key, raw, 0, 7*24*60)
		if err != nil {
			return err
		}
		dst.BookingLeadMinutes = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return nil
}

func decodeFloat(key string, raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidValue, key)
	}
	return v, nil
}

func decodeInt(key string, raw json.RawMessage, min, max int) (int, error) {
	v, err := decodeFloat(key, raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v < float64(min) || v > float64(max) {
		return 0, fmt.Errorf("%w: %s must be an integer within [%d, %d]", ErrInvalidValue, key, min, max)
	}
	return int(v), nil
}
