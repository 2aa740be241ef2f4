package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory_CanonicalPassesThrough(t *testing.T) {
	for canonical := range canonicalRecordTypes {
		assert.Equal(t, canonical, NormalizeCategory(canonical, false, false))
		// idempotent: normalizing the result changes nothing
		assert.Equal(t, canonical, NormalizeCategory(NormalizeCategory(canonical, true, true), true, true))
	}
}

func TestNormalizeCategory_LegacyMapping(t *testing.T) {
	assert.Equal(t, RecordTypeNursingNote, NormalizeCategory("nursing", false, false))
	assert.Equal(t, RecordTypeMedicalNote, NormalizeCategory("medical", false, false))
	assert.Equal(t, RecordTypeTreatment, NormalizeCategory("treatment", false, false))
}

func TestNormalizeCategory_AssessmentHeuristic(t *testing.T) {
	// both structured texts present → 処置
	assert.Equal(t, RecordTypeTreatment, NormalizeCategory("assessment", true, true))
	// notes only → 看護記録
	assert.Equal(t, RecordTypeNursingNote, NormalizeCategory("assessment", false, true))
	// interventions only → 看護記録
	assert.Equal(t, RecordTypeNursingNote, NormalizeCategory("assessment", true, false))
	assert.Equal(t, RecordTypeNursingNote, NormalizeCategory("assessment", false, false))
}

func TestNormalizeCategory_EmptyDefaultsToNursingNote(t *testing.T) {
	assert.Equal(t, RecordTypeNursingNote, NormalizeCategory("", false, false))
	assert.Equal(t, RecordTypeNursingNote, NormalizeCategory("", true, true))
}

func TestNormalizeCategory_UnknownLabelPassesThrough(t *testing.T) {
	assert.Equal(t, "リハビリ", NormalizeCategory("リハビリ", false, false))
	assert.Equal(t, "custom-type", NormalizeCategory("custom-type", true, true))
}
