package repository

import (
	"context"

	"nasreco-data/internal/domain"
)

// StaffRepository 職員Repository接口
// staff 表が現行の名簿、users 表が旧システム由来の第二名簿。
// どちらも集計時に全件ロードされ、行単位の照会は行わない。
type StaffRepository interface {
	ListStaff(ctx context.Context, tenantID string) ([]*domain.Staff, error)
	GetStaffByAccount(ctx context.Context, tenantID, account string) (*domain.Staff, error)
	ListUsers(ctx context.Context, tenantID string) ([]*domain.AppUser, error)
}
