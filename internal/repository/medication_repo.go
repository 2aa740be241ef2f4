package repository

import (
	"context"

	"nasreco-data/internal/domain"
)

// MedicationRepository 服薬記録Repository接口
// 服薬チェック表の解決（日付×タイミング照会）と記録のCRUDを担う。
type MedicationRepository interface {
	RecordsByDates(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error)
	GetRecord(ctx context.Context, tenantID, recordID string) (*domain.MedicationRecord, error)
	CreateRecord(ctx context.Context, tenantID string, record *domain.MedicationRecord) (string, error)
	UpdateRecord(ctx context.Context, tenantID, recordID string, record *domain.MedicationRecord) error
	DeleteRecord(ctx context.Context, tenantID, recordID string) error
}
