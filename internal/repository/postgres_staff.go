package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nasreco-data/internal/domain"
)

// PostgresStaffRepository 職員Repository実装
type PostgresStaffRepository struct {
	db *sql.DB
}

// NewPostgresStaffRepository 職員Repositoryを作成
func NewPostgresStaffRepository(db *sql.DB) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

var _ StaffRepository = (*PostgresStaffRepository)(nil)

// ListStaff 職員全件（現行名簿）
func (r *PostgresStaffRepository) ListStaff(ctx context.Context, tenantID string) ([]*domain.Staff, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT staff_id::text, tenant_id::text, staff_name, account, role, status, created_at
		FROM staff
		WHERE tenant_id = $1
		ORDER BY staff_name`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0, 32)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.StaffID, &s.TenantID, &s.StaffName, &s.Account, &s.Role, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}
	return staff, nil
}

// GetStaffByAccount ログイン用：アカウントで職員を取得（password_hash込み）
func (r *PostgresStaffRepository) GetStaffByAccount(ctx context.Context, tenantID, account string) (*domain.Staff, error) {
	if tenantID == "" || account == "" {
		return nil, fmt.Errorf("tenant_id and account are required")
	}

	var s domain.Staff
	var passwordHash sql.Null[[]byte]
	err := r.db.QueryRowContext(ctx, `
		SELECT staff_id::text, tenant_id::text, staff_name, account, password_hash, role, status, created_at
		FROM staff
		WHERE tenant_id = $1 AND account = $2`,
		tenantID, account,
	).Scan(&s.StaffID, &s.TenantID, &s.StaffName, &s.Account, &passwordHash, &s.Role, &s.Status, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("staff not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if passwordHash.Valid {
		s.PasswordHash = passwordHash.V
	}
	return &s, nil
}

// ListUsers 旧利用者名簿全件（第二名簿）
func (r *PostgresStaffRepository) ListUsers(ctx context.Context, tenantID string) ([]*domain.AppUser, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id::text, tenant_id::text, COALESCE(user_name, ''), COALESCE(email, '')
		FROM users
		WHERE tenant_id = $1`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.AppUser, 0, 32)
	for rows.Next() {
		var u domain.AppUser
		if err := rows.Scan(&u.UserID, &u.TenantID, &u.UserName, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
