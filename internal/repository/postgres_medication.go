package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nasreco-data/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresMedicationRepository 服薬記録Repository実装
type PostgresMedicationRepository struct {
	db *sql.DB
}

// NewPostgresMedicationRepository 服薬記録Repositoryを作成
func NewPostgresMedicationRepository(db *sql.DB) *PostgresMedicationRepository {
	return &PostgresMedicationRepository{db: db}
}

var _ MedicationRepository = (*PostgresMedicationRepository)(nil)

const medicationColumns = `
	record_id::text,
	tenant_id::text,
	resident_id::text,
	to_char(record_date, 'YYYY-MM-DD'),
	timing,
	COALESCE(confirmer1, ''),
	COALESCE(confirmer2, ''),
	COALESCE(notes, ''),
	created_at`

func scanMedicationRecord(row interface{ Scan(...any) error }) (*domain.MedicationRecord, error) {
	var m domain.MedicationRecord
	err := row.Scan(
		&m.RecordID,
		&m.TenantID,
		&m.ResidentID,
		&m.RecordDate,
		&m.Timing,
		&m.Confirmer1,
		&m.Confirmer2,
		&m.Notes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordsByDates 対象日リストの服薬記録を全件取得
func (r *PostgresMedicationRepository) RecordsByDates(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	if len(dates) == 0 {
		return nil, nil
	}

	query := `SELECT ` + medicationColumns + `
		FROM medication_records
		WHERE tenant_id = $1 AND record_date = ANY($2)
		ORDER BY record_date, resident_id, timing`

	rows, err := r.db.QueryContext(ctx, query, tenantID, pq.Array(dates))
	if err != nil {
		return nil, fmt.Errorf("failed to query medication records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MedicationRecord, 0, 64)
	for rows.Next() {
		rec, err := scanMedicationRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medication record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medication records: %w", err)
	}
	return records, nil
}

// GetRecord record_idで服薬記録を取得
func (r *PostgresMedicationRepository) GetRecord(ctx context.Context, tenantID, recordID string) (*domain.MedicationRecord, error) {
	if tenantID == "" || recordID == "" {
		return nil, fmt.Errorf("tenant_id and record_id are required")
	}

	query := `SELECT ` + medicationColumns + `
		FROM medication_records
		WHERE tenant_id = $1 AND record_id = $2`

	rec, err := scanMedicationRecord(r.db.QueryRowContext(ctx, query, tenantID, recordID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("medication record not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get medication record: %w", err)
	}
	return rec, nil
}

// CreateRecord 服薬記録を作成（IDはサーバ側で採番）
func (r *PostgresMedicationRepository) CreateRecord(ctx context.Context, tenantID string, record *domain.MedicationRecord) (string, error) {
	if tenantID == "" {
		return "", fmt.Errorf("tenant_id is required")
	}
	if record.ResidentID == "" || record.RecordDate == "" {
		return "", fmt.Errorf("resident_id and record_date are required")
	}
	if !domain.IsValidTiming(record.Timing) {
		return "", fmt.Errorf("invalid timing: %s", record.Timing)
	}

	recordID := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_records (
			record_id, tenant_id, resident_id, record_date, timing,
			confirmer1, confirmer2, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		recordID, tenantID, record.ResidentID, record.RecordDate, record.Timing,
		record.Confirmer1, record.Confirmer2, record.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create medication record: %w", err)
	}
	return recordID, nil
}

// UpdateRecord 確認者・備考を更新
func (r *PostgresMedicationRepository) UpdateRecord(ctx context.Context, tenantID, recordID string, record *domain.MedicationRecord) error {
	if tenantID == "" || recordID == "" {
		return fmt.Errorf("tenant_id and record_id are required")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medication_records
		SET confirmer1 = $3,
		    confirmer2 = $4,
		    notes = $5
		WHERE tenant_id = $1 AND record_id = $2`,
		tenantID, recordID,
		record.Confirmer1, record.Confirmer2, record.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("medication record not found")
	}
	return nil
}

// DeleteRecord 服薬記録を削除
func (r *PostgresMedicationRepository) DeleteRecord(ctx context.Context, tenantID, recordID string) error {
	if tenantID == "" || recordID == "" {
		return fmt.Errorf("tenant_id and record_id are required")
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM medication_records WHERE tenant_id = $1 AND record_id = $2`,
		tenantID, recordID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete medication record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("medication record not found")
	}
	return nil
}
