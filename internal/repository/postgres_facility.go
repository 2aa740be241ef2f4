package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nasreco-data/internal/domain"
)

// PostgresFacilityRepository 施設設定Repository実装
type PostgresFacilityRepository struct {
	db *sql.DB
}

// NewPostgresFacilityRepository 施設設定Repositoryを作成
func NewPostgresFacilityRepository(db *sql.DB) *PostgresFacilityRepository {
	return &PostgresFacilityRepository{db: db}
}

var _ FacilityRepository = (*PostgresFacilityRepository)(nil)

// GetSettings 施設設定を取得（行が無ければデフォルト）
func (r *PostgresFacilityRepository) GetSettings(ctx context.Context, tenantID string) (*domain.FacilitySettings, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	var s domain.FacilitySettings
	err := r.db.QueryRowContext(ctx, `
		SELECT tenant_id::text, COALESCE(facility_name, ''), floor_count,
		       webhook_enabled, COALESCE(webhook_url, ''), updated_at
		FROM facility_settings
		WHERE tenant_id = $1`,
		tenantID,
	).Scan(&s.TenantID, &s.FacilityName, &s.FloorCount, &s.WebhookEnabled, &s.WebhookURL, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.FacilitySettings{TenantID: tenantID, FloorCount: 1}, nil
		}
		return nil, fmt.Errorf("failed to get facility settings: %w", err)
	}
	return &s, nil
}

// UpsertSettings 施設設定を作成または更新
func (r *PostgresFacilityRepository) UpsertSettings(ctx context.Context, tenantID string, settings *domain.FacilitySettings) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if settings.FloorCount < 1 {
		settings.FloorCount = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO facility_settings (tenant_id, facility_name, floor_count, webhook_enabled, webhook_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET facility_name = EXCLUDED.facility_name,
		    floor_count = EXCLUDED.floor_count,
		    webhook_enabled = EXCLUDED.webhook_enabled,
		    webhook_url = EXCLUDED.webhook_url,
		    updated_at = NOW()`,
		tenantID, settings.FacilityName, settings.FloorCount, settings.WebhookEnabled, settings.WebhookURL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert facility settings: %w", err)
	}
	return nil
}
