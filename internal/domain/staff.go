package domain

import "time"

// Staff 職員（staff 表、primary registry）
type Staff struct {
	StaffID      string    `db:"staff_id"`  // UUID, PRIMARY KEY
	TenantID     string    `db:"tenant_id"` // UUID, NOT NULL
	StaffName    string    `db:"staff_name"`
	Account      string    `db:"account"` // login account, UNIQUE(tenant_id, account)
	PasswordHash []byte    `db:"password_hash"`
	Role         string    `db:"role"`   // 介護職 / 看護職 / 管理者
	Status       string    `db:"status"` // active / retired
	CreatedAt    time.Time `db:"created_at"`
}

// AppUser アプリ利用者（users 表、secondary registry）
// Historical-migration artifact: older records reference this table instead
// of staff. Kept as the fallback registry for staff-name resolution.
type AppUser struct {
	UserID   string `db:"user_id"` // UUID, PRIMARY KEY
	TenantID string `db:"tenant_id"`
	UserName string `db:"user_name"`
	Email    string `db:"email"`
}

// DisplayName prefers the user name and falls back to the email.
func (u *AppUser) DisplayName() string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.Email
}
