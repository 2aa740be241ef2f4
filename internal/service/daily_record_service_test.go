package service

import (
	"context"
	"testing"
	"time"

	"nasreco-data/internal/domain"
	"nasreco-data/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResidentsRepo struct {
	residents []*domain.Resident
}

func (f *fakeResidentsRepo) GetResident(ctx context.Context, tenantID, residentID string) (*domain.Resident, error) {
	for _, r := range f.residents {
		if r.ResidentID == residentID {
			return r, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeResidentsRepo) ListResidents(ctx context.Context, tenantID string, filters repository.ResidentFilters, page, size int) ([]*domain.Resident, int, error) {
	return f.residents, len(f.residents), nil
}

func (f *fakeResidentsRepo) ListActiveResidents(ctx context.Context, tenantID, floor string) ([]*domain.Resident, error) {
	if floor == "" {
		return f.residents, nil
	}
	out := make([]*domain.Resident, 0, len(f.residents))
	for _, r := range f.residents {
		if r.Floor == floor {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResidentsRepo) CreateResident(ctx context.Context, tenantID string, resident *domain.Resident) (string, error) {
	return "resident-new", nil
}

func (f *fakeResidentsRepo) UpdateResident(ctx context.Context, tenantID, residentID string, resident *domain.Resident) error {
	return nil
}

func (f *fakeResidentsRepo) UpdateMedicationSchedule(ctx context.Context, tenantID, residentID string, s domain.WeeklyMedicationSchedule) error {
	return nil
}

func (f *fakeResidentsRepo) DeleteResident(ctx context.Context, tenantID, residentID string) error {
	return nil
}

type fakeCareRecords struct {
	careNotes []domain.CareNote
}

func (f *fakeCareRecords) CareNotes(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CareNote, error) {
	return f.careNotes, nil
}

func (f *fakeCareRecords) Meals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.MealRecord, error) {
	return nil, nil
}

func (f *fakeCareRecords) MedicationRecords(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error) {
	return nil, nil
}

func (f *fakeCareRecords) Vitals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.VitalRecord, error) {
	return nil, nil
}

func (f *fakeCareRecords) Excretions(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExcretionRecord, error) {
	return nil, nil
}

func (f *fakeCareRecords) Cleanings(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CleaningRecord, error) {
	return nil, nil
}

func (f *fakeCareRecords) Weights(ctx context.Context, tenantID string, from, to time.Time) ([]domain.WeightRecord, error) {
	return nil, nil
}

func (f *fakeCareRecords) NursingRecords(ctx context.Context, tenantID string, from, to time.Time) ([]domain.NursingRecord, error) {
	return nil, nil
}

func TestGetDailyRecords_ResolvesStaffAcrossRegistries(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, jst)

	residents := &fakeResidentsRepo{residents: []*domain.Resident{
		{ResidentID: "resident-1", TenantID: "tenant-123", ResidentName: "山田太郎", RoomNumber: "201", Floor: "2", Status: "active"},
	}}
	staffRepo := &fakeStaffRepo{
		staff: []*domain.Staff{
			{StaffID: "staff-1", StaffName: "佐藤花子", Status: "active"},
		},
		users: []*domain.AppUser{
			{UserID: "user-9", UserName: "旧職員"},
		},
	}
	records := &fakeCareRecords{careNotes: []domain.CareNote{
		{RecordID: "note-1", ResidentID: "resident-1", RecordTime: at, Content: "朝の様子良好", StaffRef: "staff-1", CreatedAt: at},
		{RecordID: "note-2", ResidentID: "resident-1", RecordTime: at.Add(time.Hour), Content: "昼食前の移乗介助", StaffRef: "user-9", CreatedAt: at},
	}}

	svc := NewDailyRecordService(records, residents, staffRepo, zap.NewNop())

	resp, err := svc.GetDailyRecords(context.Background(), "tenant-123", DailyRecordsRequest{Date: "2025-03-10"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)

	// 降順なのでnote-2が先
	assert.Equal(t, "note-2", resp.Entries[0].ID)
	// 第一台帳（staff）と第二台帳（users）の双方で解決される
	assert.Equal(t, "旧職員", resp.Entries[0].StaffName)
	assert.Equal(t, "佐藤花子", resp.Entries[1].StaffName)
}

func TestGetDailyRecords_RequiresDate(t *testing.T) {
	svc := NewDailyRecordService(&fakeCareRecords{}, &fakeResidentsRepo{}, &fakeStaffRepo{}, zap.NewNop())

	_, err := svc.GetDailyRecords(context.Background(), "tenant-123", DailyRecordsRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date is required")
}

func TestGetDailyRecords_FloorFilterLimitsRoster(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, jst)

	residents := &fakeResidentsRepo{residents: []*domain.Resident{
		{ResidentID: "resident-1", ResidentName: "山田太郎", RoomNumber: "201", Floor: "2", Status: "active"},
		{ResidentID: "resident-2", ResidentName: "高橋梅", RoomNumber: "305", Floor: "3", Status: "active"},
	}}
	records := &fakeCareRecords{careNotes: []domain.CareNote{
		{RecordID: "note-1", ResidentID: "resident-1", RecordTime: at, Content: "2階の記録", CreatedAt: at},
		{RecordID: "note-2", ResidentID: "resident-2", RecordTime: at, Content: "3階の記録", CreatedAt: at},
	}}

	svc := NewDailyRecordService(records, residents, &fakeStaffRepo{}, zap.NewNop())

	resp, err := svc.GetDailyRecords(context.Background(), "tenant-123", DailyRecordsRequest{Date: "2025-03-10", Floor: "3"})
	require.NoError(t, err)
	// 名簿外の入居者の行は落ちる
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "note-2", resp.Entries[0].ID)
}
