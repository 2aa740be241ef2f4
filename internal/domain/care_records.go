package domain

import "time"

// 食事区分（meal_records.meal_type）
const (
	MealBreakfast = "朝食"
	MealLunch     = "昼食"
	MealSnack     = "おやつ"
	MealDinner    = "夕食"
)

// CareNote 介護記録（care_notes 表）
type CareNote struct {
	RecordID   string    `db:"record_id"`
	TenantID   string    `db:"tenant_id"`
	ResidentID string    `db:"resident_id"`
	RecordTime time.Time `db:"record_time"`
	Content    string    `db:"content"`
	StaffRef   string    `db:"staff_ref"`
	CreatedAt  time.Time `db:"created_at"`
}

// MealRecord 食事記録（meal_records 表）
// Display time is derived from the meal type's fixed clock time on the
// record's calendar date, not from RecordTime's clock components.
type MealRecord struct {
	RecordID   string    `db:"record_id"`
	TenantID   string    `db:"tenant_id"`
	ResidentID string    `db:"resident_id"`
	RecordTime time.Time `db:"record_time"`
	MealType   string    `db:"meal_type"` // 朝食/昼食/おやつ/夕食
	Content    string    `db:"content"`   // intake amounts, free text
	StaffSign  string    `db:"staff_sign"` // stamp; empty means not surfaced
	CreatedAt  time.Time `db:"created_at"`
}

// VitalRecord バイタル記録（vital_records 表）
type VitalRecord struct {
	RecordID    string    `db:"record_id"`
	TenantID    string    `db:"tenant_id"`
	ResidentID  string    `db:"resident_id"`
	RecordTime  time.Time `db:"record_time"`
	Temperature *float64  `db:"temperature"` // ℃
	Pulse       *int      `db:"pulse"`
	BPHigh      *int      `db:"bp_high"`
	BPLow       *int      `db:"bp_low"`
	SpO2        *int      `db:"spo2"`
	Note        string    `db:"note"`
	StaffSign   string    `db:"staff_sign"` // stamp; empty means not surfaced
	CreatedAt   time.Time `db:"created_at"`
}

// HasMeasurement reports whether at least one vital value was taken.
func (v *VitalRecord) HasMeasurement() bool {
	return v.Temperature != nil || v.Pulse != nil || v.BPHigh != nil || v.BPLow != nil || v.SpO2 != nil
}

// ExcretionRecord 排泄記録（excretion_records 表）
type ExcretionRecord struct {
	RecordID   string    `db:"record_id"`
	TenantID   string    `db:"tenant_id"`
	ResidentID string    `db:"resident_id"`
	RecordTime time.Time `db:"record_time"`
	Kind       string    `db:"kind"`   // 尿 / 便 / 両方
	Amount     string    `db:"amount"` // 多/中/少, free text in legacy rows
	Content    string    `db:"content"`
	StaffRef   string    `db:"staff_ref"`
	CreatedAt  time.Time `db:"created_at"`
}

// CleaningRecord 清掃リネン記録（cleaning_records 表）
type CleaningRecord struct {
	RecordID   string    `db:"record_id"`
	TenantID   string    `db:"tenant_id"`
	ResidentID string    `db:"resident_id"`
	RecordTime time.Time `db:"record_time"`
	Kind       string    `db:"kind"` // 清掃 / リネン交換
	Content    string    `db:"content"`
	StaffRef   string    `db:"staff_ref"`
	CreatedAt  time.Time `db:"created_at"`
}

// WeightRecord 体重記録（weight_records 表）
type WeightRecord struct {
	RecordID   string    `db:"record_id"`
	TenantID   string    `db:"tenant_id"`
	ResidentID string    `db:"resident_id"`
	RecordTime time.Time `db:"record_time"`
	WeightKg   *float64  `db:"weight_kg"`
	Content    string    `db:"content"`
	StaffRef   string    `db:"staff_ref"`
	CreatedAt  time.Time `db:"created_at"`
}

// NursingRecord 看護記録（nursing_records 表）
// ResidentID is nullable: facility-wide notes are not tied to a resident.
// Category may come from the current taxonomy or the legacy English one;
// normalization happens in the aggregation layer.
type NursingRecord struct {
	RecordID      string    `db:"record_id"`
	TenantID      string    `db:"tenant_id"`
	ResidentID    *string   `db:"resident_id"`
	RecordTime    time.Time `db:"record_time"`
	Category      string    `db:"category"`
	Interventions string    `db:"interventions"` // structured intervention text
	Notes         string    `db:"notes"`         // structured note text
	StaffRef      string    `db:"staff_ref"`
	CreatedAt     time.Time `db:"created_at"`
}

// Content returns the display text for a nursing record: notes first,
// interventions as fallback.
func (n *NursingRecord) Content() string {
	if n.Notes != "" {
		return n.Notes
	}
	return n.Interventions
}
