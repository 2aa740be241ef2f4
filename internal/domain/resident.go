package domain

import "time"

// Resident 入居者領域モデル（residents 表）
// Room/floor are stored as text the way the facility writes them ("101", "2F").
type Resident struct {
	ResidentID string `db:"resident_id"` // UUID, PRIMARY KEY
	TenantID   string `db:"tenant_id"`   // UUID, NOT NULL

	ResidentName string `db:"resident_name"` // VARCHAR(100), NOT NULL
	RoomNumber   string `db:"room_number"`   // VARCHAR(20), NOT NULL
	Floor        string `db:"floor"`         // VARCHAR(10), NOT NULL

	// active / discharged
	Status string `db:"status"` // VARCHAR(20), NOT NULL, DEFAULT 'active'

	AdmissionDate *time.Time `db:"admission_date"` // DATE, nullable

	// 服薬週間スケジュール（曜日フラグ＋服薬タイミングフラグ）
	MedicationSchedule WeeklyMedicationSchedule

	CreatedAt time.Time `db:"created_at"`
}

// WeeklyMedicationSchedule holds the per-resident medication schedule flags:
// seven weekday flags (does medication apply on that weekday) and nine
// timing-slot flags (is that slot configured for this resident).
type WeeklyMedicationSchedule struct {
	Monday    bool `db:"med_monday"`
	Tuesday   bool `db:"med_tuesday"`
	Wednesday bool `db:"med_wednesday"`
	Thursday  bool `db:"med_thursday"`
	Friday    bool `db:"med_friday"`
	Saturday  bool `db:"med_saturday"`
	Sunday    bool `db:"med_sunday"`

	SlotWake          bool `db:"slot_wake"`           // 起床時
	SlotPreBreakfast  bool `db:"slot_pre_breakfast"`  // 朝前
	SlotPostBreakfast bool `db:"slot_post_breakfast"` // 朝後
	SlotPreLunch      bool `db:"slot_pre_lunch"`      // 昼前
	SlotPostLunch     bool `db:"slot_post_lunch"`     // 昼後
	SlotPreDinner     bool `db:"slot_pre_dinner"`     // 夕前
	SlotPostDinner    bool `db:"slot_post_dinner"`    // 夕後
	SlotPreSleep      bool `db:"slot_pre_sleep"`      // 眠前
	SlotAsNeeded      bool `db:"slot_as_needed"`      // 頓服
}

// EnabledOn reports whether medication applies on the given weekday.
func (s WeeklyMedicationSchedule) EnabledOn(wd time.Weekday) bool {
	switch wd {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	}
	return false
}
