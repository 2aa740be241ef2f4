package aggregator

import (
	"testing"

	"nasreco-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledResident(id, name, room, floor string) *domain.Resident {
	return &domain.Resident{
		ResidentID:   id,
		ResidentName: name,
		RoomNumber:   room,
		Floor:        floor,
		MedicationSchedule: domain.WeeklyMedicationSchedule{
			Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
			Friday: true, Saturday: true, Sunday: true,
			SlotPreLunch: true, SlotPostBreakfast: true,
		},
	}
}

// 2025-03-10 is a Monday.
func TestResolveMedicationDay_SynthesizesPlaceholder(t *testing.T) {
	resX := scheduledResident("X", "山田太郎", "101", "1F")

	entries, err := ResolveMedicationDay("2025-03-10", domain.TimingPreLunch, nil, []*domain.Resident{resX})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "placeholder-X-昼前", e.ID)
	assert.Equal(t, "X", e.ResidentID)
	assert.Equal(t, domain.TimingPreLunch, e.Timing)
	assert.False(t, e.Recorded)
	assert.Nil(t, e.Confirmer1)
	assert.Nil(t, e.Confirmer2)
	assert.Nil(t, e.Notes)
}

func TestResolveMedicationDay_WeekdayFlagOffMeansNoPlaceholder(t *testing.T) {
	res := scheduledResident("X", "山田太郎", "101", "1F")
	res.MedicationSchedule.Monday = false

	entries, err := ResolveMedicationDay("2025-03-10", domain.TimingPreLunch, nil, []*domain.Resident{res})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveMedicationDay_SlotFlagOffMeansNoPlaceholder(t *testing.T) {
	res := scheduledResident("X", "山田太郎", "101", "1F")
	res.MedicationSchedule.SlotPreLunch = false

	entries, err := ResolveMedicationDay("2025-03-10", domain.TimingPreLunch, nil, []*domain.Resident{res})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveMedicationDay_ExistingRecordSuppressesPlaceholder(t *testing.T) {
	res := scheduledResident("X", "山田太郎", "101", "1F")
	records := []domain.MedicationRecord{
		{RecordID: "rec-1", ResidentID: "X", RecordDate: "2025-03-10", Timing: domain.TimingPreLunch,
			Confirmer1: "s1", Confirmer2: "s2", Notes: "拒薬なし"},
	}

	entries, err := ResolveMedicationDay("2025-03-10", domain.TimingPreLunch, records, []*domain.Resident{res})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rec-1", entries[0].ID)
	assert.True(t, entries[0].Recorded)
	require.NotNil(t, entries[0].Confirmer1)
	assert.Equal(t, "s1", *entries[0].Confirmer1)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "拒薬なし", *entries[0].Notes)
}

func TestResolveMedicationDay_HalfSignedRowNeverSurfaces(t *testing.T) {
	res := scheduledResident("X", "山田太郎", "101", "1F")
	records := []domain.MedicationRecord{
		{RecordID: "rec-1", ResidentID: "X", RecordDate: "2025-03-10", Timing: domain.TimingPreLunch,
			Confirmer1: "s1", Confirmer2: ""},
	}

	entries, err := ResolveMedicationDay("2025-03-10", domain.TimingPreLunch, records, []*domain.Resident{res})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// the half-signed row is treated as absent: placeholder instead
	assert.Equal(t, "placeholder-X-昼前", entries[0].ID)
	assert.False(t, entries[0].Recorded)
}

func TestResolveMedicationDay_AllSlotsSortedByRoomThenTiming(t *testing.T) {
	resA := scheduledResident("A", "高橋梅", "205", "2F")
	resB := scheduledResident("B", "山田太郎", "101", "1F")

	entries, err := ResolveMedicationDay("2025-03-10", domain.TimingAll, nil, []*domain.Resident{resA, resB})
	require.NoError(t, err)
	// two enabled slots per resident
	require.Len(t, entries, 4)

	assert.Equal(t, "101", entries[0].RoomNumber)
	assert.Equal(t, domain.TimingPostBreakfast, entries[0].Timing)
	assert.Equal(t, domain.TimingPreLunch, entries[1].Timing)
	assert.Equal(t, "205", entries[2].RoomNumber)

	// multi-slot query: placeholder ids carry the date
	assert.Equal(t, "placeholder-B-2025-03-10-朝後", entries[0].ID)
}

func TestResolveMedicationDay_UnknownTiming(t *testing.T) {
	_, err := ResolveMedicationDay("2025-03-10", "真夜中", nil, nil)
	assert.Error(t, err)
}

func TestResolveMedicationRange_RepeatsPerDate(t *testing.T) {
	res := scheduledResident("X", "山田太郎", "101", "1F")
	// Tuesday is off: 2025-03-11 must produce nothing
	res.MedicationSchedule.Tuesday = false
	records := []domain.MedicationRecord{
		{RecordID: "rec-1", ResidentID: "X", RecordDate: "2025-03-12", Timing: domain.TimingPreLunch,
			Confirmer1: "s1", Confirmer2: "s2"},
	}

	entries, err := ResolveMedicationRange("2025-03-10", "2025-03-12", records, []*domain.Resident{res})
	require.NoError(t, err)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{
		"placeholder-X-2025-03-10-朝後",
		"placeholder-X-2025-03-10-昼前",
		"placeholder-X-2025-03-12-朝後",
		"rec-1",
	}, ids)

	// date ascending within one room
	assert.Equal(t, "2025-03-10", entries[0].RecordDate)
	assert.Equal(t, "2025-03-12", entries[len(entries)-1].RecordDate)
}

func TestResolveMedicationRange_ReversedRange(t *testing.T) {
	_, err := ResolveMedicationRange("2025-03-12", "2025-03-10", nil, nil)
	assert.Error(t, err)
}
