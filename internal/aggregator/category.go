package aggregator

// 表示記録種別（current taxonomy）
const (
	RecordTypeCareNote    = "介護記録"
	RecordTypeMeal        = "食事"
	RecordTypeMedication  = "服薬"
	RecordTypeVital       = "バイタル"
	RecordTypeExcretion   = "排泄"
	RecordTypeCleaning    = "清掃リネン"
	RecordTypeWeight      = "体重"
	RecordTypeNursingNote = "看護記録"
	RecordTypeMedicalNote = "医療記録"
	RecordTypeTreatment   = "処置"
)

var canonicalRecordTypes = map[string]struct{}{
	RecordTypeCareNote:    {},
	RecordTypeMeal:        {},
	RecordTypeMedication:  {},
	RecordTypeVital:       {},
	RecordTypeExcretion:   {},
	RecordTypeCleaning:    {},
	RecordTypeWeight:      {},
	RecordTypeNursingNote: {},
	RecordTypeMedicalNote: {},
	RecordTypeTreatment:   {},
}

// legacyCategoryMap maps the old English nursing-category taxonomy onto the
// current labels. Kept as an explicit table so the mapping stays auditable.
// "assessment" is intentionally missing: it has no 1:1 equivalent and is
// resolved by NormalizeCategory's auxiliary-flag rule.
var legacyCategoryMap = map[string]string{
	"nursing":   RecordTypeNursingNote,
	"medical":   RecordTypeMedicalNote,
	"treatment": RecordTypeTreatment,
}

const legacyAssessment = "assessment"

// NormalizeCategory maps a stored nursing-record category (current taxonomy,
// legacy taxonomy, or absent) onto a display record type.
//
// The legacy "assessment" label is ambiguous: rows that carry both structured
// intervention text and structured note text resolve to 処置, everything else
// to 看護記録. This is a heuristic inherited from the legacy data migration,
// not a guaranteed-correct classification.
//
// Unknown non-empty labels pass through unchanged so custom record types keep
// working; an empty category defaults to 看護記録.
func NormalizeCategory(raw string, hasInterventions, hasNotes bool) string {
	if raw == "" {
		return RecordTypeNursingNote
	}
	if _, ok := canonicalRecordTypes[raw]; ok {
		return raw
	}
	if raw == legacyAssessment {
		if hasInterventions && hasNotes {
			return RecordTypeTreatment
		}
		return RecordTypeNursingNote
	}
	if mapped, ok := legacyCategoryMap[raw]; ok {
		return mapped
	}
	return raw
}
