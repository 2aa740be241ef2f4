package domain

import "time"

// FacilitySettings 施設設定（facility_settings 表、テナント毎に1行）
type FacilitySettings struct {
	TenantID     string    `db:"tenant_id"` // UUID, PRIMARY KEY
	FacilityName string    `db:"facility_name"`
	FloorCount   int       `db:"floor_count"`
	// Shift-handover webhook for the daily summary push.
	WebhookEnabled bool      `db:"webhook_enabled"`
	WebhookURL     string    `db:"webhook_url"`
	UpdatedAt      time.Time `db:"updated_at"`
}
