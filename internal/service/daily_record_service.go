package service

import (
	"context"
	"fmt"

	"nasreco-data/internal/aggregator"
	"nasreco-data/internal/domain"
	"nasreco-data/internal/repository"

	"go.uber.org/zap"
)

// DailyRecordService 日次タイムライン集計サービス接口
type DailyRecordService interface {
	GetDailyRecords(ctx context.Context, tenantID string, req DailyRecordsRequest) (*DailyRecordsResponse, error)
}

type dailyRecordService struct {
	records       repository.CareRecordsRepository
	residentsRepo repository.ResidentsRepository
	staffRepo     repository.StaffRepository
	logger        *zap.Logger
}

// NewDailyRecordService 日次集計サービスを作成
func NewDailyRecordService(
	records repository.CareRecordsRepository,
	residentsRepo repository.ResidentsRepository,
	staffRepo repository.StaffRepository,
	logger *zap.Logger,
) DailyRecordService {
	return &dailyRecordService{
		records:       records,
		residentsRepo: residentsRepo,
		staffRepo:     staffRepo,
		logger:        logger,
	}
}

// DailyRecordsRequest 日次タイムライン要求
type DailyRecordsRequest struct {
	Date             string   // "YYYY-MM-DD"、必須
	Floor            string   // 階フィルタ、任意
	Types            []string // 表示記録種別フィルタ、空なら全種別
	IncludeNightTail bool     // 翌日08:30:59まで窓を延長
	TimeCategory     string   // "daytime" | "night"、排泄/清掃リネン/体重のみ
}

// DailyRecordsResponse 日次タイムライン応答
type DailyRecordsResponse struct {
	Date    string             `json:"date"`
	Entries []aggregator.Entry `json:"entries"`
	Total   int                `json:"total"`
}

// GetDailyRecords 名簿・職員台帳をロードして日次タイムラインを構築
func (s *dailyRecordService) GetDailyRecords(ctx context.Context, tenantID string, req DailyRecordsRequest) (*DailyRecordsResponse, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	if req.Date == "" {
		return nil, fmt.Errorf("date is required")
	}

	residents, err := s.residentsRepo.ListActiveResidents(ctx, tenantID, req.Floor)
	if err != nil {
		return nil, fmt.Errorf("failed to load residents: %w", err)
	}
	roster := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		roster[r.ResidentID] = r
	}

	staff, err := s.loadStaffDirectory(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	agg := aggregator.NewDailyAggregator(s.records, s.logger)
	entries, err := agg.Aggregate(ctx, tenantID, aggregator.DailyQuery{
		Date:             req.Date,
		Types:            req.Types,
		IncludeNightTail: req.IncludeNightTail,
		TimeCategory:     req.TimeCategory,
	}, roster, staff)
	if err != nil {
		return nil, err
	}

	return &DailyRecordsResponse{
		Date:    req.Date,
		Entries: entries,
		Total:   len(entries),
	}, nil
}

// loadStaffDirectory staff表を第一、users表を第二の台帳として職員名簿を組む。
// 旧システム移行前の記録はusers表のIDを参照しているため両方要る。
func (s *dailyRecordService) loadStaffDirectory(ctx context.Context, tenantID string) (*aggregator.StaffDirectory, error) {
	staffRows, err := s.staffRepo.ListStaff(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff registry: %w", err)
	}
	primary := make(map[string]string, len(staffRows))
	for _, st := range staffRows {
		primary[st.StaffID] = st.StaffName
	}

	users, err := s.staffRepo.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user registry: %w", err)
	}
	secondary := make(map[string]string, len(users))
	for _, u := range users {
		secondary[u.UserID] = u.DisplayName()
	}

	return aggregator.NewStaffDirectory(primary, secondary), nil
}
