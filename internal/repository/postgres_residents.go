package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"nasreco-data/internal/domain"

	"github.com/google/uuid"
)

// PostgresResidentsRepository 入居者Repository実装
type PostgresResidentsRepository struct {
	db *sql.DB
}

// NewPostgresResidentsRepository 入居者Repositoryを作成
func NewPostgresResidentsRepository(db *sql.DB) *PostgresResidentsRepository {
	return &PostgresResidentsRepository{db: db}
}

var _ ResidentsRepository = (*PostgresResidentsRepository)(nil)

const residentColumns = `
	resident_id::text,
	tenant_id::text,
	resident_name,
	room_number,
	floor,
	status,
	admission_date,
	med_monday, med_tuesday, med_wednesday, med_thursday, med_friday, med_saturday, med_sunday,
	slot_wake, slot_pre_breakfast, slot_post_breakfast,
	slot_pre_lunch, slot_post_lunch,
	slot_pre_dinner, slot_post_dinner,
	slot_pre_sleep, slot_as_needed,
	created_at`

func scanResident(row interface{ Scan(...any) error }) (*domain.Resident, error) {
	var r domain.Resident
	var admissionDate sql.NullTime
	s := &r.MedicationSchedule
	err := row.Scan(
		&r.ResidentID,
		&r.TenantID,
		&r.ResidentName,
		&r.RoomNumber,
		&r.Floor,
		&r.Status,
		&admissionDate,
		&s.Monday, &s.Tuesday, &s.Wednesday, &s.Thursday, &s.Friday, &s.Saturday, &s.Sunday,
		&s.SlotWake, &s.SlotPreBreakfast, &s.SlotPostBreakfast,
		&s.SlotPreLunch, &s.SlotPostLunch,
		&s.SlotPreDinner, &s.SlotPostDinner,
		&s.SlotPreSleep, &s.SlotAsNeeded,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if admissionDate.Valid {
		r.AdmissionDate = &admissionDate.Time
	}
	return &r, nil
}

// GetResident resident_idで入居者を取得
func (r *PostgresResidentsRepository) GetResident(ctx context.Context, tenantID, residentID string) (*domain.Resident, error) {
	if tenantID == "" || residentID == "" {
		return nil, fmt.Errorf("tenant_id and resident_id are required")
	}

	query := `SELECT ` + residentColumns + `
		FROM residents
		WHERE tenant_id = $1 AND resident_id = $2`

	resident, err := scanResident(r.db.QueryRowContext(ctx, query, tenantID, residentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("resident not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	return resident, nil
}

// ListResidents 入居者一覧（ページング付き）
func (r *PostgresResidentsRepository) ListResidents(ctx context.Context, tenantID string, filters ResidentFilters, page, size int) ([]*domain.Resident, int, error) {
	if tenantID == "" {
		return nil, 0, fmt.Errorf("tenant_id is required")
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if filters.Floor != "" {
		args = append(args, filters.Floor)
		where = append(where, fmt.Sprintf("floor = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where = append(where, fmt.Sprintf("(resident_name ILIKE $%d OR room_number ILIKE $%d)", len(args), len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM residents WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count residents: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := `SELECT ` + residentColumns + `
		FROM residents
		WHERE ` + whereClause + `
		ORDER BY room_number, resident_name
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list residents: %w", err)
	}
	defer rows.Close()

	residents := make([]*domain.Resident, 0, size)
	for rows.Next() {
		resident, err := scanResident(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, resident)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate residents: %w", err)
	}
	return residents, total, nil
}

// ListActiveResidents アクティブな入居者全件（集計用、階フィルタ任意）
func (r *PostgresResidentsRepository) ListActiveResidents(ctx context.Context, tenantID, floor string) ([]*domain.Resident, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	query := `SELECT ` + residentColumns + `
		FROM residents
		WHERE tenant_id = $1 AND status = 'active'`
	args := []any{tenantID}
	if floor != "" {
		query += ` AND floor = $2`
		args = append(args, floor)
	}
	query += ` ORDER BY room_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active residents: %w", err)
	}
	defer rows.Close()

	residents := make([]*domain.Resident, 0, 64)
	for rows.Next() {
		resident, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, resident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate residents: %w", err)
	}
	return residents, nil
}

// CreateResident 入居者を作成（IDはサーバ側で採番）
func (r *PostgresResidentsRepository) CreateResident(ctx context.Context, tenantID string, resident *domain.Resident) (string, error) {
	if tenantID == "" {
		return "", fmt.Errorf("tenant_id is required")
	}
	if resident.ResidentName == "" || resident.RoomNumber == "" {
		return "", fmt.Errorf("resident_name and room_number are required")
	}

	residentID := uuid.NewString()
	status := resident.Status
	if status == "" {
		status = "active"
	}
	s := resident.MedicationSchedule

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO residents (
			resident_id, tenant_id, resident_name, room_number, floor, status, admission_date,
			med_monday, med_tuesday, med_wednesday, med_thursday, med_friday, med_saturday, med_sunday,
			slot_wake, slot_pre_breakfast, slot_post_breakfast,
			slot_pre_lunch, slot_post_lunch,
			slot_pre_dinner, slot_post_dinner,
			slot_pre_sleep, slot_as_needed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)`,
		residentID, tenantID, resident.ResidentName, resident.RoomNumber, resident.Floor, status, resident.AdmissionDate,
		s.Monday, s.Tuesday, s.Wednesday, s.Thursday, s.Friday, s.Saturday, s.Sunday,
		s.SlotWake, s.SlotPreBreakfast, s.SlotPostBreakfast,
		s.SlotPreLunch, s.SlotPostLunch,
		s.SlotPreDinner, s.SlotPostDinner,
		s.SlotPreSleep, s.SlotAsNeeded,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create resident: %w", err)
	}
	return residentID, nil
}

// UpdateResident 入居者の基本情報を更新
func (r *PostgresResidentsRepository) UpdateResident(ctx context.Context, tenantID, residentID string, resident *domain.Resident) error {
	if tenantID == "" || residentID == "" {
		return fmt.Errorf("tenant_id and resident_id are required")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE residents
		SET resident_name = $3,
		    room_number = $4,
		    floor = $5,
		    status = $6,
		    admission_date = $7
		WHERE tenant_id = $1 AND resident_id = $2`,
		tenantID, residentID,
		resident.ResidentName, resident.RoomNumber, resident.Floor, resident.Status, resident.AdmissionDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update resident: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("resident not found")
	}
	return nil
}

// UpdateMedicationSchedule 服薬週間スケジュールのみを更新
func (r *PostgresResidentsRepository) UpdateMedicationSchedule(ctx context.Context, tenantID, residentID string, s domain.WeeklyMedicationSchedule) error {
	if tenantID == "" || residentID == "" {
		return fmt.Errorf("tenant_id and resident_id are required")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE residents
		SET med_monday = $3, med_tuesday = $4, med_wednesday = $5, med_thursday = $6,
		    med_friday = $7, med_saturday = $8, med_sunday = $9,
		    slot_wake = $10, slot_pre_breakfast = $11, slot_post_breakfast = $12,
		    slot_pre_lunch = $13, slot_post_lunch = $14,
		    slot_pre_dinner = $15, slot_post_dinner = $16,
		    slot_pre_sleep = $17, slot_as_needed = $18
		WHERE tenant_id = $1 AND resident_id = $2`,
		tenantID, residentID,
		s.Monday, s.Tuesday, s.Wednesday, s.Thursday, s.Friday, s.Saturday, s.Sunday,
		s.SlotWake, s.SlotPreBreakfast, s.SlotPostBreakfast,
		s.SlotPreLunch, s.SlotPostLunch,
		s.SlotPreDinner, s.SlotPostDinner,
		s.SlotPreSleep, s.SlotAsNeeded,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("resident not found")
	}
	return nil
}

// DeleteResident 入居者を削除
func (r *PostgresResidentsRepository) DeleteResident(ctx context.Context, tenantID, residentID string) error {
	if tenantID == "" || residentID == "" {
		return fmt.Errorf("tenant_id and resident_id are required")
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM residents WHERE tenant_id = $1 AND resident_id = $2`,
		tenantID, residentID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resident: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("resident not found")
	}
	return nil
}
