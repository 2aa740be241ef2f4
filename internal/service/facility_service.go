package service

import (
	"context"

	"nasreco-data/internal/domain"
	"nasreco-data/internal/repository"

	"go.uber.org/zap"
)

// FacilityService 施設設定サービス接口
type FacilityService interface {
	GetSettings(ctx context.Context, tenantID string) (*domain.FacilitySettings, error)
	UpdateSettings(ctx context.Context, tenantID string, settings *domain.FacilitySettings) error
}

type facilityService struct {
	facilityRepo repository.FacilityRepository
	logger       *zap.Logger
}

// NewFacilityService 施設設定サービスを作成
func NewFacilityService(facilityRepo repository.FacilityRepository, logger *zap.Logger) FacilityService {
	return &facilityService{facilityRepo: facilityRepo, logger: logger}
}

func (s *facilityService) GetSettings(ctx context.Context, tenantID string) (*domain.FacilitySettings, error) {
	return s.facilityRepo.GetSettings(ctx, tenantID)
}

func (s *facilityService) UpdateSettings(ctx context.Context, tenantID string, settings *domain.FacilitySettings) error {
	if err := s.facilityRepo.UpsertSettings(ctx, tenantID, settings); err != nil {
		return err
	}
	s.logger.Info("Facility settings updated",
		zap.String("tenant_id", tenantID),
		zap.Int("floor_count", settings.FloorCount),
		zap.Bool("webhook_enabled", settings.WebhookEnabled),
	)
	return nil
}
