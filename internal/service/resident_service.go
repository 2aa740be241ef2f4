package service

import (
	"context"
	"fmt"
	"time"

	"nasreco-data/internal/domain"
	"nasreco-data/internal/repository"

	"go.uber.org/zap"
)

// ResidentService 入居者管理サービス接口
type ResidentService interface {
	ListResidents(ctx context.Context, tenantID string, req ListResidentsRequest) (*ListResidentsResponse, error)
	GetResident(ctx context.Context, tenantID, residentID string) (*ResidentDTO, error)
	CreateResident(ctx context.Context, tenantID string, req ResidentRequest) (string, error)
	UpdateResident(ctx context.Context, tenantID, residentID string, req ResidentRequest) error
	UpdateMedicationSchedule(ctx context.Context, tenantID, residentID string, schedule domain.WeeklyMedicationSchedule) error
	DeleteResident(ctx context.Context, tenantID, residentID string) error
}

type residentService struct {
	residentsRepo repository.ResidentsRepository
	logger        *zap.Logger
}

// NewResidentService 入居者サービスを作成
func NewResidentService(residentsRepo repository.ResidentsRepository, logger *zap.Logger) ResidentService {
	return &residentService{residentsRepo: residentsRepo, logger: logger}
}

// ListResidentsRequest 入居者一覧要求
type ListResidentsRequest struct {
	Floor  string
	Status string
	Search string // 氏名・居室番号の部分一致
	Page   int
	Size   int
}

// ResidentDTO 入居者応答
type ResidentDTO struct {
	ResidentID         string                          `json:"residentId"`
	ResidentName       string                          `json:"residentName"`
	RoomNumber         string                          `json:"roomNumber"`
	Floor              string                          `json:"floor"`
	Status             string                          `json:"status"`
	AdmissionDate      string                          `json:"admissionDate,omitempty"` // "YYYY-MM-DD"
	MedicationSchedule domain.WeeklyMedicationSchedule `json:"medicationSchedule"`
}

// ListResidentsResponse 入居者一覧応答
type ListResidentsResponse struct {
	Residents []ResidentDTO `json:"residents"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	Size      int           `json:"size"`
}

// ResidentRequest 入居者作成・更新要求
type ResidentRequest struct {
	ResidentName       string                          `json:"residentName"`
	RoomNumber         string                          `json:"roomNumber"`
	Floor              string                          `json:"floor"`
	Status             string                          `json:"status"`
	AdmissionDate      string                          `json:"admissionDate"` // "YYYY-MM-DD"、任意
	MedicationSchedule domain.WeeklyMedicationSchedule `json:"medicationSchedule"`
}

func toResidentDTO(r *domain.Resident) ResidentDTO {
	dto := ResidentDTO{
		ResidentID:         r.ResidentID,
		ResidentName:       r.ResidentName,
		RoomNumber:         r.RoomNumber,
		Floor:              r.Floor,
		Status:             r.Status,
		MedicationSchedule: r.MedicationSchedule,
	}
	if r.AdmissionDate != nil {
		dto.AdmissionDate = r.AdmissionDate.Format("2006-01-02")
	}
	return dto
}

func (req ResidentRequest) toDomain() (*domain.Resident, error) {
	r := &domain.Resident{
		ResidentName:       req.ResidentName,
		RoomNumber:         req.RoomNumber,
		Floor:              req.Floor,
		Status:             req.Status,
		MedicationSchedule: req.MedicationSchedule,
	}
	if req.AdmissionDate != "" {
		d, err := time.Parse("2006-01-02", req.AdmissionDate)
		if err != nil {
			return nil, fmt.Errorf("invalid admission_date %q: %w", req.AdmissionDate, err)
		}
		r.AdmissionDate = &d
	}
	return r, nil
}

// ListResidents 入居者一覧（ページング付き）
func (s *residentService) ListResidents(ctx context.Context, tenantID string, req ListResidentsRequest) (*ListResidentsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Size < 1 {
		req.Size = 50
	}

	residents, total, err := s.residentsRepo.ListResidents(ctx, tenantID, repository.ResidentFilters{
		Floor:  req.Floor,
		Status: req.Status,
		Search: req.Search,
	}, req.Page, req.Size)
	if err != nil {
		return nil, err
	}

	dtos := make([]ResidentDTO, 0, len(residents))
	for _, r := range residents {
		dtos = append(dtos, toResidentDTO(r))
	}
	return &ListResidentsResponse{
		Residents: dtos,
		Total:     total,
		Page:      req.Page,
		Size:      req.Size,
	}, nil
}

// GetResident 入居者詳細
func (s *residentService) GetResident(ctx context.Context, tenantID, residentID string) (*ResidentDTO, error) {
	r, err := s.residentsRepo.GetResident(ctx, tenantID, residentID)
	if err != nil {
		return nil, err
	}
	dto := toResidentDTO(r)
	return &dto, nil
}

// CreateResident 入居者を作成
func (s *residentService) CreateResident(ctx context.Context, tenantID string, req ResidentRequest) (string, error) {
	r, err := req.toDomain()
	if err != nil {
		return "", err
	}
	residentID, err := s.residentsRepo.CreateResident(ctx, tenantID, r)
	if err != nil {
		return "", err
	}
	s.logger.Info("Resident created",
		zap.String("tenant_id", tenantID),
		zap.String("resident_id", residentID),
		zap.String("room_number", req.RoomNumber),
	)
	return residentID, nil
}

// UpdateResident 入居者の基本情報を更新
func (s *residentService) UpdateResident(ctx context.Context, tenantID, residentID string, req ResidentRequest) error {
	r, err := req.toDomain()
	if err != nil {
		return err
	}
	return s.residentsRepo.UpdateResident(ctx, tenantID, residentID, r)
}

// UpdateMedicationSchedule 服薬週間スケジュールのみを更新
func (s *residentService) UpdateMedicationSchedule(ctx context.Context, tenantID, residentID string, schedule domain.WeeklyMedicationSchedule) error {
	if err := s.residentsRepo.UpdateMedicationSchedule(ctx, tenantID, residentID, schedule); err != nil {
		return err
	}
	s.logger.Info("Medication schedule updated",
		zap.String("tenant_id", tenantID),
		zap.String("resident_id", residentID),
	)
	return nil
}

// DeleteResident 入居者を削除
func (s *residentService) DeleteResident(ctx context.Context, tenantID, residentID string) error {
	if err := s.residentsRepo.DeleteResident(ctx, tenantID, residentID); err != nil {
		return err
	}
	s.logger.Info("Resident deleted",
		zap.String("tenant_id", tenantID),
		zap.String("resident_id", residentID),
	)
	return nil
}
