package repository

import (
	"context"

	"nasreco-data/internal/domain"
)

// ResidentsRepository 入居者Repository接口
// 強い型付けの領域モデルを使用し、Repository層はデータアクセスのみを担当する
type ResidentsRepository interface {
	// 照会
	GetResident(ctx context.Context, tenantID, residentID string) (*domain.Resident, error)
	ListResidents(ctx context.Context, tenantID string, filters ResidentFilters, page, size int) ([]*domain.Resident, int, error)
	// ListActiveResidents returns the full active roster (optionally one
	// floor), used by the aggregation paths. No pagination.
	ListActiveResidents(ctx context.Context, tenantID, floor string) ([]*domain.Resident, error)

	// 作成・更新・削除
	CreateResident(ctx context.Context, tenantID string, resident *domain.Resident) (string, error)
	UpdateResident(ctx context.Context, tenantID, residentID string, resident *domain.Resident) error
	UpdateMedicationSchedule(ctx context.Context, tenantID, residentID string, sched domain.WeeklyMedicationSchedule) error
	DeleteResident(ctx context.Context, tenantID, residentID string) error
}

// ResidentFilters 入居者照会フィルタ
type ResidentFilters struct {
	Floor  string // 階で絞り込み
	Status string // active / discharged
	Search string // 氏名・居室番号の部分一致
}
