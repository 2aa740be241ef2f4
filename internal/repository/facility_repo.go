package repository

import (
	"context"

	"nasreco-data/internal/domain"
)

// FacilityRepository 施設設定Repository接口
// テナントごとに1行。存在しなければデフォルト値を返す。
type FacilityRepository interface {
	GetSettings(ctx context.Context, tenantID string) (*domain.FacilitySettings, error)
	UpsertSettings(ctx context.Context, tenantID string, settings *domain.FacilitySettings) error
}
