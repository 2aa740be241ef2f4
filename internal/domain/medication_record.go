package domain

import "time"

// 服薬タイミング（canonical timing slots, stored verbatim in medication_records.timing）
const (
	TimingWake          = "起床時" // wake
	TimingPreBreakfast  = "朝前"  // pre-breakfast
	TimingPostBreakfast = "朝後"  // post-breakfast
	TimingPreLunch      = "昼前"  // pre-lunch
	TimingPostLunch     = "昼後"  // post-lunch
	TimingPreDinner     = "夕前"  // pre-dinner
	TimingPostDinner    = "夕後"  // post-dinner
	TimingPreSleep      = "眠前"  // pre-sleep
	TimingAsNeeded      = "頓服"  // as-needed
)

// TimingAll is the query selector meaning "every timing slot".
const TimingAll = "all"

// TimingSlots is the canonical slot order used for display sorting.
var TimingSlots = []string{
	TimingWake,
	TimingPreBreakfast,
	TimingPostBreakfast,
	TimingPreLunch,
	TimingPostLunch,
	TimingPreDinner,
	TimingPostDinner,
	TimingPreSleep,
	TimingAsNeeded,
}

// IsValidTiming reports whether s is one of the nine canonical slots.
func IsValidTiming(s string) bool {
	for _, t := range TimingSlots {
		if t == s {
			return true
		}
	}
	return false
}

// SlotEnabled reports whether the given timing slot is configured for the
// resident. Unknown slot labels are never enabled.
func (s WeeklyMedicationSchedule) SlotEnabled(timing string) bool {
	switch timing {
	case TimingWake:
		return s.SlotWake
	case TimingPreBreakfast:
		return s.SlotPreBreakfast
	case TimingPostBreakfast:
		return s.SlotPostBreakfast
	case TimingPreLunch:
		return s.SlotPreLunch
	case TimingPostLunch:
		return s.SlotPostLunch
	case TimingPreDinner:
		return s.SlotPreDinner
	case TimingPostDinner:
		return s.SlotPostDinner
	case TimingPreSleep:
		return s.SlotPreSleep
	case TimingAsNeeded:
		return s.SlotAsNeeded
	}
	return false
}

// MedicationRecord 服薬記録（medication_records 表）
// A record only counts as administered when both confirmers have signed;
// rows with a missing confirmer are treated as absent by the aggregation
// paths even though the row exists.
type MedicationRecord struct {
	RecordID   string `db:"record_id"`   // UUID, PRIMARY KEY
	TenantID   string `db:"tenant_id"`   // UUID, NOT NULL
	ResidentID string `db:"resident_id"` // UUID, NOT NULL

	RecordDate string `db:"record_date"` // DATE, stored/handled as "YYYY-MM-DD"
	Timing     string `db:"timing"`      // one of TimingSlots

	Confirmer1 string `db:"confirmer1"` // staff ref of the first sign-off
	Confirmer2 string `db:"confirmer2"` // staff ref of the second sign-off
	Notes      string `db:"notes"`      // TEXT, nullable

	CreatedAt time.Time `db:"created_at"`
}

// Recorded reports whether both confirmers have signed.
func (m *MedicationRecord) Recorded() bool {
	return m.Confirmer1 != "" && m.Confirmer2 != ""
}
