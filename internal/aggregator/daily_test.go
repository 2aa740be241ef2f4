package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"nasreco-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource feeds canned rows into the aggregator; setting an err field
// makes the matching fetch fail.
type fakeSource struct {
	careNotes   []domain.CareNote
	meals       []domain.MealRecord
	medications []domain.MedicationRecord
	vitals      []domain.VitalRecord
	excretions  []domain.ExcretionRecord
	cleanings   []domain.CleaningRecord
	weights     []domain.WeightRecord
	nursing     []domain.NursingRecord

	careNotesErr error
	vitalsErr    error
}

func (f *fakeSource) CareNotes(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CareNote, error) {
	return f.careNotes, f.careNotesErr
}
func (f *fakeSource) Meals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.MealRecord, error) {
	return f.meals, nil
}
func (f *fakeSource) MedicationRecords(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error) {
	return f.medications, nil
}
func (f *fakeSource) Vitals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.VitalRecord, error) {
	return f.vitals, f.vitalsErr
}
func (f *fakeSource) Excretions(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExcretionRecord, error) {
	return f.excretions, nil
}
func (f *fakeSource) Cleanings(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CleaningRecord, error) {
	return f.cleanings, nil
}
func (f *fakeSource) Weights(ctx context.Context, tenantID string, from, to time.Time) ([]domain.WeightRecord, error) {
	return f.weights, nil
}
func (f *fakeSource) NursingRecords(ctx context.Context, tenantID string, from, to time.Time) ([]domain.NursingRecord, error) {
	return f.nursing, nil
}

func testRoster() map[string]*domain.Resident {
	return map[string]*domain.Resident{
		"r1": {ResidentID: "r1", ResidentName: "山田太郎", RoomNumber: "101", Floor: "1F"},
		"r2": {ResidentID: "r2", ResidentName: "高橋梅", RoomNumber: "205", Floor: "2F"},
	}
}

func testStaffDir() *StaffDirectory {
	return NewStaffDirectory(
		map[string]string{"s1": "田中花子"},
		map[string]string{"u1": "佐藤次郎"},
	)
}

func jst(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, JST)
}

func aggregate(t *testing.T, src *fakeSource, q DailyQuery) []Entry {
	t.Helper()
	a := NewDailyAggregator(src, zap.NewNop())
	entries, err := a.Aggregate(context.Background(), "tenant-1", q, testRoster(), testStaffDir())
	require.NoError(t, err)
	return entries
}

func TestAggregate_SortedByRecordTimeDescending(t *testing.T) {
	src := &fakeSource{
		careNotes: []domain.CareNote{
			{RecordID: "c1", ResidentID: "r1", RecordTime: jst(9, 0), Content: "朝の様子", StaffRef: "s1"},
			{RecordID: "c2", ResidentID: "r2", RecordTime: jst(14, 0), Content: "午後の様子", StaffRef: "u1"},
		},
		excretions: []domain.ExcretionRecord{
			{RecordID: "e1", ResidentID: "r1", RecordTime: jst(11, 0), Kind: "尿", Amount: "中", StaffRef: "s1"},
		},
		nursing: []domain.NursingRecord{
			{RecordID: "n1", ResidentID: strPtr("r1"), RecordTime: jst(16, 30), Category: "看護記録", Notes: "経過観察", StaffRef: "s1"},
		},
	}

	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 4)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i-1].at.Before(entries[i].at),
			"entries must be sorted by record time descending")
	}
	assert.Equal(t, "n1", entries[0].ID)
	assert.Equal(t, "c1", entries[3].ID)
}

func TestAggregate_FetchFailureDegradesToZeroRecordsOfThatType(t *testing.T) {
	src := &fakeSource{
		careNotesErr: errors.New("relation care_notes is unreachable"),
		vitalsErr:    errors.New("timeout"),
		meals: []domain.MealRecord{
			{RecordID: "m1", ResidentID: "r1", RecordTime: jst(8, 5), MealType: domain.MealBreakfast, Content: "主食10割", StaffSign: "s1"},
		},
	}

	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 1)
	assert.Equal(t, RecordTypeMeal, entries[0].RecordType)
}

func TestAggregate_MealAndVitalRequireStaffSign(t *testing.T) {
	src := &fakeSource{
		meals: []domain.MealRecord{
			{RecordID: "m1", ResidentID: "r1", RecordTime: jst(12, 10), MealType: domain.MealLunch, Content: "主食10割", StaffSign: ""},
		},
		vitals: []domain.VitalRecord{
			{RecordID: "v1", ResidentID: "r1", RecordTime: jst(10, 0), Temperature: f64(36.5), StaffSign: ""},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	assert.Empty(t, entries)
}

func TestAggregate_HalfSignedMedicationIsAbsent(t *testing.T) {
	src := &fakeSource{
		medications: []domain.MedicationRecord{
			{RecordID: "mr1", ResidentID: "r1", RecordDate: "2025-03-10", Timing: domain.TimingPostBreakfast, Confirmer1: "s1", Confirmer2: ""},
			{RecordID: "mr2", ResidentID: "r1", RecordDate: "2025-03-10", Timing: domain.TimingPostLunch, Confirmer1: "s1", Confirmer2: "u1"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 1)
	assert.Equal(t, "mr2", entries[0].ID)
}

func TestAggregate_MedicationDisplayTime(t *testing.T) {
	created := time.Date(2025, 3, 10, 11, 47, 12, 0, JST)
	src := &fakeSource{
		medications: []domain.MedicationRecord{
			// conventional slot: fixed clock time 12:30
			{RecordID: "mr1", ResidentID: "r1", RecordDate: "2025-03-10", Timing: domain.TimingPostLunch, Confirmer1: "s1", Confirmer2: "u1", CreatedAt: created},
			// exact-time slot: creation time-of-day wins
			{RecordID: "mr2", ResidentID: "r1", RecordDate: "2025-03-10", Timing: domain.TimingPreLunch, Confirmer1: "s1", Confirmer2: "u1", CreatedAt: created},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 2)
	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.ID] = e
	}
	assert.Equal(t, "2025-03-10T12:30:00+09:00", byID["mr1"].RecordTime)
	assert.Equal(t, "2025-03-10T11:47:12+09:00", byID["mr2"].RecordTime)
}

func TestAggregate_MealDisplayTimeUsesMealClock(t *testing.T) {
	src := &fakeSource{
		meals: []domain.MealRecord{
			{RecordID: "m1", ResidentID: "r2", RecordTime: jst(19, 42), MealType: domain.MealDinner, Content: "主食8割 副食10割", StaffSign: "s1"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-03-10T18:00:00+09:00", entries[0].RecordTime)
}

func TestAggregate_UnknownResidentRowsAreDropped(t *testing.T) {
	src := &fakeSource{
		careNotes: []domain.CareNote{
			{RecordID: "c1", ResidentID: "ghost", RecordTime: jst(9, 0), Content: "誰の記録？", StaffRef: "s1"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	assert.Empty(t, entries)
}

func TestAggregate_FacilityWideNursingNoteKept(t *testing.T) {
	src := &fakeSource{
		nursing: []domain.NursingRecord{
			{RecordID: "n1", ResidentID: nil, RecordTime: jst(21, 0), Category: "", Notes: "夜間フロア巡回異常なし", StaffRef: "s1"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 1)
	assert.Equal(t, RecordTypeNursingNote, entries[0].RecordType)
	assert.Empty(t, entries[0].ResidentID)
	assert.Empty(t, entries[0].RoomNumber)
}

func TestAggregate_LegacyAssessmentSplit(t *testing.T) {
	src := &fakeSource{
		nursing: []domain.NursingRecord{
			{RecordID: "n1", ResidentID: strPtr("r1"), RecordTime: jst(10, 0), Category: "assessment", Interventions: "褥瘡処置", Notes: "左踵部", StaffRef: "s1"},
			{RecordID: "n2", ResidentID: strPtr("r1"), RecordTime: jst(11, 0), Category: "assessment", Notes: "食欲低下気味", StaffRef: "s1"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 2)
	byID := map[string]string{}
	for _, e := range entries {
		byID[e.ID] = e.RecordType
	}
	assert.Equal(t, RecordTypeTreatment, byID["n1"])
	assert.Equal(t, RecordTypeNursingNote, byID["n2"])
}

func TestAggregate_ShiftBucketAndFilter(t *testing.T) {
	src := &fakeSource{
		excretions: []domain.ExcretionRecord{
			{RecordID: "e1", ResidentID: "r1", RecordTime: jst(9, 0), Kind: "便", Amount: "少", StaffRef: "s1"},
			{RecordID: "e2", ResidentID: "r1", RecordTime: jst(22, 0), Kind: "尿", Amount: "多", StaffRef: "s1"},
		},
		weights: []domain.WeightRecord{
			{RecordID: "w1", ResidentID: "r2", RecordTime: jst(10, 0), WeightKg: f64(52.3), StaffRef: "s1"},
		},
	}

	all := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, all, 3)
	for _, e := range all {
		assert.NotEmpty(t, e.TimeCategory)
	}

	daytime := aggregate(t, src, DailyQuery{Date: "2025-03-10", TimeCategory: ShiftDaytime})
	require.Len(t, daytime, 2)
	for _, e := range daytime {
		assert.Equal(t, ShiftDaytime, e.TimeCategory)
	}
}

func TestAggregate_TypeFilter(t *testing.T) {
	src := &fakeSource{
		careNotes: []domain.CareNote{
			{RecordID: "c1", ResidentID: "r1", RecordTime: jst(9, 0), Content: "記録", StaffRef: "s1"},
		},
		weights: []domain.WeightRecord{
			{RecordID: "w1", ResidentID: "r1", RecordTime: jst(10, 0), WeightKg: f64(60), StaffRef: "s1"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10", Types: []string{RecordTypeWeight}})
	require.Len(t, entries, 1)
	assert.Equal(t, RecordTypeWeight, entries[0].RecordType)
}

func TestAggregate_NightTailExtendsWindowForNextDayMedication(t *testing.T) {
	src := &fakeSource{
		medications: []domain.MedicationRecord{
			// next-day 朝前 07:30 is inside the extended window
			{RecordID: "mr1", ResidentID: "r1", RecordDate: "2025-03-11", Timing: domain.TimingPreBreakfast, Confirmer1: "s1", Confirmer2: "s1"},
			// next-day 朝後 08:30 is still inside (cutoff 08:30:59) …
			{RecordID: "mr2", ResidentID: "r1", RecordDate: "2025-03-11", Timing: domain.TimingPostBreakfast, Confirmer1: "s1", Confirmer2: "s1"},
			// … but 昼後 12:30 is past the cutoff
			{RecordID: "mr3", ResidentID: "r1", RecordDate: "2025-03-11", Timing: domain.TimingPostLunch, Confirmer1: "s1", Confirmer2: "s1"},
		},
	}

	plain := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	assert.Empty(t, plain)

	extended := aggregate(t, src, DailyQuery{Date: "2025-03-10", IncludeNightTail: true})
	ids := make([]string, 0, len(extended))
	for _, e := range extended {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"mr1", "mr2"}, ids)
}

func TestAggregate_StaffNameResolution(t *testing.T) {
	src := &fakeSource{
		careNotes: []domain.CareNote{
			{RecordID: "c1", ResidentID: "r1", RecordTime: jst(9, 0), Content: "a", StaffRef: "s1"},
			{RecordID: "c2", ResidentID: "r1", RecordTime: jst(9, 1), Content: "b", StaffRef: "u1"},
			{RecordID: "c3", ResidentID: "r1", RecordTime: jst(9, 2), Content: "c", StaffRef: "nobody"},
		},
	}
	entries := aggregate(t, src, DailyQuery{Date: "2025-03-10"})
	require.Len(t, entries, 3)
	names := map[string]string{}
	for _, e := range entries {
		names[e.ID] = e.StaffName
	}
	assert.Equal(t, "田中花子", names["c1"])
	assert.Equal(t, "佐藤次郎", names["c2"])
	assert.Equal(t, "nobody", names["c3"])
}

func TestAggregate_InvalidDate(t *testing.T) {
	a := NewDailyAggregator(&fakeSource{}, zap.NewNop())
	_, err := a.Aggregate(context.Background(), "tenant-1", DailyQuery{Date: "03/10/2025"}, testRoster(), testStaffDir())
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
func f64(v float64) *float64  { return &v }
