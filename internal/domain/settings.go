package domain

import "time"

const (
	SettingCommissionRate     = "commission_rate"
	SettingMinPayoutAmount    = "min_payout_amount"
	SettingFeedbackLinkTTL    = "feedback_link_ttl_hours"
	SettingBookingLeadMinutes = "booking_lead_minutes"
)

// PlatformSetting is a key/value row; Value holds a JSON scalar as text.
type PlatformSetting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedBy *int64    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformSetting) TableName() string { return "platform_settings" }
