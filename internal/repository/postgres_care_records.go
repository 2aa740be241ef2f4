package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nasreco-data/internal/domain"

	"github.com/lib/pq"
)

// PostgresCareRecordsRepository 日常記録Repository実装
type PostgresCareRecordsRepository struct {
	db *sql.DB
}

// NewPostgresCareRecordsRepository 日常記録Repositoryを作成
func NewPostgresCareRecordsRepository(db *sql.DB) *PostgresCareRecordsRepository {
	return &PostgresCareRecordsRepository{db: db}
}

var _ CareRecordsRepository = (*PostgresCareRecordsRepository)(nil)

// CareNotes 介護記録のウィンドウ照会
func (r *PostgresCareRecordsRepository) CareNotes(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CareNote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       COALESCE(content, ''), COALESCE(staff_ref, ''), created_at
		FROM care_notes
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query care notes: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CareNote, 0, 32)
	for rows.Next() {
		var rec domain.CareNote
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordTime,
			&rec.Content, &rec.StaffRef, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan care note: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Meals 食事記録のウィンドウ照会
func (r *PostgresCareRecordsRepository) Meals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.MealRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       COALESCE(meal_type, ''), COALESCE(content, ''), COALESCE(staff_sign, ''), created_at
		FROM meal_records
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MealRecord, 0, 32)
	for rows.Next() {
		var rec domain.MealRecord
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordTime,
			&rec.MealType, &rec.Content, &rec.StaffSign, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MedicationRecords 服薬記録の日付照会（record_dateは暦日キー）
func (r *PostgresCareRecordsRepository) MedicationRecords(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text,
		       to_char(record_date, 'YYYY-MM-DD'), timing,
		       COALESCE(confirmer1, ''), COALESCE(confirmer2, ''), COALESCE(notes, ''), created_at
		FROM medication_records
		WHERE tenant_id = $1 AND record_date = ANY($2)
		ORDER BY record_date, timing`,
		tenantID, pq.Array(dates),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query medication records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MedicationRecord, 0, 32)
	for rows.Next() {
		var rec domain.MedicationRecord
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordDate, &rec.Timing,
			&rec.Confirmer1, &rec.Confirmer2, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medication record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Vitals バイタル記録のウィンドウ照会
func (r *PostgresCareRecordsRepository) Vitals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.VitalRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       temperature, pulse, bp_high, bp_low, spo2,
		       COALESCE(note, ''), COALESCE(staff_sign, ''), created_at
		FROM vital_records
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query vital records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.VitalRecord, 0, 32)
	for rows.Next() {
		var rec domain.VitalRecord
		var temperature sql.NullFloat64
		var pulse, bpHigh, bpLow, spo2 sql.NullInt64
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordTime,
			&temperature, &pulse, &bpHigh, &bpLow, &spo2,
			&rec.Note, &rec.StaffSign, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vital record: %w", err)
		}
		if temperature.Valid {
			rec.Temperature = &temperature.Float64
		}
		rec.Pulse = nullableInt(pulse)
		rec.BPHigh = nullableInt(bpHigh)
		rec.BPLow = nullableInt(bpLow)
		rec.SpO2 = nullableInt(spo2)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Excretions 排泄記録のウィンドウ照会
func (r *PostgresCareRecordsRepository) Excretions(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExcretionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       COALESCE(kind, ''), COALESCE(amount, ''), COALESCE(content, ''), COALESCE(staff_ref, ''), created_at
		FROM excretion_records
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query excretion records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ExcretionRecord, 0, 32)
	for rows.Next() {
		var rec domain.ExcretionRecord
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordTime,
			&rec.Kind, &rec.Amount, &rec.Content, &rec.StaffRef, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan excretion record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Cleanings 清掃リネン記録のウィンドウ照会
func (r *PostgresCareRecordsRepository) Cleanings(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CleaningRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       COALESCE(kind, ''), COALESCE(content, ''), COALESCE(staff_ref, ''), created_at
		FROM cleaning_records
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cleaning records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.CleaningRecord, 0, 32)
	for rows.Next() {
		var rec domain.CleaningRecord
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordTime,
			&rec.Kind, &rec.Content, &rec.StaffRef, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cleaning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Weights 体重記録のウィンドウ照会
func (r *PostgresCareRecordsRepository) Weights(ctx context.Context, tenantID string, from, to time.Time) ([]domain.WeightRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       weight_kg, COALESCE(content, ''), COALESCE(staff_ref, ''), created_at
		FROM weight_records
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.WeightRecord, 0, 32)
	for rows.Next() {
		var rec domain.WeightRecord
		var weight sql.NullFloat64
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &rec.ResidentID, &rec.RecordTime,
			&weight, &rec.Content, &rec.StaffRef, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight record: %w", err)
		}
		if weight.Valid {
			rec.WeightKg = &weight.Float64
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// NursingRecords 看護記録のウィンドウ照会（resident_idはNULL許容）
func (r *PostgresCareRecordsRepository) NursingRecords(ctx context.Context, tenantID string, from, to time.Time) ([]domain.NursingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_id::text, tenant_id::text, resident_id::text, record_time,
		       COALESCE(category, ''), COALESCE(interventions, ''), COALESCE(notes, ''),
		       COALESCE(staff_ref, ''), created_at
		FROM nursing_records
		WHERE tenant_id = $1 AND record_time BETWEEN $2 AND $3
		ORDER BY record_time`,
		tenantID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query nursing records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.NursingRecord, 0, 32)
	for rows.Next() {
		var rec domain.NursingRecord
		var residentID sql.NullString
		if err := rows.Scan(&rec.RecordID, &rec.TenantID, &residentID, &rec.RecordTime,
			&rec.Category, &rec.Interventions, &rec.Notes, &rec.StaffRef, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nursing record: %w", err)
		}
		if residentID.Valid {
			rec.ResidentID = &residentID.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
