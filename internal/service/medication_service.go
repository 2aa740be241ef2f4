package service

import (
	"context"
	"fmt"
	"time"

	"nasreco-data/internal/aggregator"
	"nasreco-data/internal/domain"
	"nasreco-data/internal/repository"

	"go.uber.org/zap"
)

// MedicationService 服薬チェック表サービス接口
type MedicationService interface {
	GetChecks(ctx context.Context, tenantID string, req MedicationChecksRequest) (*MedicationChecksResponse, error)
	GetChecksRange(ctx context.Context, tenantID string, req MedicationRangeRequest) (*MedicationChecksResponse, error)
	CreateRecord(ctx context.Context, tenantID string, req CreateMedicationRequest) (string, error)
	UpdateRecord(ctx context.Context, tenantID, recordID string, req UpdateMedicationRequest) error
	DeleteRecord(ctx context.Context, tenantID, recordID string) error
}

type medicationService struct {
	medicationRepo repository.MedicationRepository
	residentsRepo  repository.ResidentsRepository
	logger         *zap.Logger
}

// NewMedicationService 服薬チェックサービスを作成
func NewMedicationService(
	medicationRepo repository.MedicationRepository,
	residentsRepo repository.ResidentsRepository,
	logger *zap.Logger,
) MedicationService {
	return &medicationService{
		medicationRepo: medicationRepo,
		residentsRepo:  residentsRepo,
		logger:         logger,
	}
}

// MedicationChecksRequest 単日の服薬チェック表要求
type MedicationChecksRequest struct {
	Date   string // "YYYY-MM-DD"、必須
	Timing string // 正準タイミングまたは"all"。空は"all"扱い
	Floor  string // 階フィルタ、任意
}

// MedicationRangeRequest 期間の服薬チェック表要求
type MedicationRangeRequest struct {
	From  string // "YYYY-MM-DD"、必須
	To    string // "YYYY-MM-DD"、必須
	Floor string
}

// MedicationChecksResponse 服薬チェック表応答
type MedicationChecksResponse struct {
	Entries []aggregator.MedicationEntry `json:"entries"`
	Total   int                          `json:"total"`
}

// CreateMedicationRequest 服薬記録作成要求
type CreateMedicationRequest struct {
	ResidentID string `json:"residentId"`
	RecordDate string `json:"recordDate"`
	Timing     string `json:"timing"`
	Confirmer1 string `json:"confirmer1"`
	Confirmer2 string `json:"confirmer2"`
	Notes      string `json:"notes"`
}

// UpdateMedicationRequest 服薬記録更新要求（確認者・備考のみ）
type UpdateMedicationRequest struct {
	Confirmer1 string `json:"confirmer1"`
	Confirmer2 string `json:"confirmer2"`
	Notes      string `json:"notes"`
}

// GetChecks 単日の服薬チェック表を解決
func (s *medicationService) GetChecks(ctx context.Context, tenantID string, req MedicationChecksRequest) (*MedicationChecksResponse, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	if req.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	timing := req.Timing
	if timing == "" {
		timing = domain.TimingAll
	}

	residents, err := s.residentsRepo.ListActiveResidents(ctx, tenantID, req.Floor)
	if err != nil {
		return nil, fmt.Errorf("failed to load residents: %w", err)
	}

	records, err := s.medicationRepo.RecordsByDates(ctx, tenantID, []string{req.Date})
	if err != nil {
		return nil, fmt.Errorf("failed to load medication records: %w", err)
	}

	entries, err := aggregator.ResolveMedicationDay(req.Date, timing, records, residents)
	if err != nil {
		return nil, err
	}
	return &MedicationChecksResponse{Entries: entries, Total: len(entries)}, nil
}

// GetChecksRange 期間の服薬チェック表を解決（全スロット対象）
func (s *medicationService) GetChecksRange(ctx context.Context, tenantID string, req MedicationRangeRequest) (*MedicationChecksResponse, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	if req.From == "" || req.To == "" {
		return nil, fmt.Errorf("from and to are required")
	}

	dates, err := datesBetween(req.From, req.To)
	if err != nil {
		return nil, err
	}

	residents, err := s.residentsRepo.ListActiveResidents(ctx, tenantID, req.Floor)
	if err != nil {
		return nil, fmt.Errorf("failed to load residents: %w", err)
	}

	records, err := s.medicationRepo.RecordsByDates(ctx, tenantID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to load medication records: %w", err)
	}

	entries, err := aggregator.ResolveMedicationRange(req.From, req.To, records, residents)
	if err != nil {
		return nil, err
	}
	return &MedicationChecksResponse{Entries: entries, Total: len(entries)}, nil
}

// CreateRecord 服薬記録を作成
func (s *medicationService) CreateRecord(ctx context.Context, tenantID string, req CreateMedicationRequest) (string, error) {
	recordID, err := s.medicationRepo.CreateRecord(ctx, tenantID, &domain.MedicationRecord{
		ResidentID: req.ResidentID,
		RecordDate: req.RecordDate,
		Timing:     req.Timing,
		Confirmer1: req.Confirmer1,
		Confirmer2: req.Confirmer2,
		Notes:      req.Notes,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Medication record created",
		zap.String("tenant_id", tenantID),
		zap.String("record_id", recordID),
		zap.String("resident_id", req.ResidentID),
		zap.String("record_date", req.RecordDate),
		zap.String("timing", req.Timing),
	)
	return recordID, nil
}

// UpdateRecord 確認者・備考を更新
func (s *medicationService) UpdateRecord(ctx context.Context, tenantID, recordID string, req UpdateMedicationRequest) error {
	return s.medicationRepo.UpdateRecord(ctx, tenantID, recordID, &domain.MedicationRecord{
		Confirmer1: req.Confirmer1,
		Confirmer2: req.Confirmer2,
		Notes:      req.Notes,
	})
}

// DeleteRecord 服薬記録を削除
func (s *medicationService) DeleteRecord(ctx context.Context, tenantID, recordID string) error {
	if err := s.medicationRepo.DeleteRecord(ctx, tenantID, recordID); err != nil {
		return err
	}
	s.logger.Info("Medication record deleted",
		zap.String("tenant_id", tenantID),
		zap.String("record_id", recordID),
	)
	return nil
}

func datesBetween(from, to string) ([]string, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("date range %s..%s is reversed", from, to)
	}
	dates := make([]string, 0, end.Sub(start)/(24*time.Hour)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}
