package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nasreco-data/internal/repository"
	"nasreco-data/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// セッションTTL。夜勤明けまで持つように12時間。
const sessionTTL = 12 * time.Hour

// AuthService 認証サービス接口
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*Session, error)
}

type authService struct {
	staffRepo repository.StaffRepository
	sessions  store.KV
	logger    *zap.Logger
}

// NewAuthService 認証サービスを作成
func NewAuthService(staffRepo repository.StaffRepository, sessions store.KV, logger *zap.Logger) AuthService {
	return &authService{
		staffRepo: staffRepo,
		sessions:  sessions,
		logger:    logger,
	}
}

// LoginRequest ログイン要求
type LoginRequest struct {
	TenantID  string
	Account   string
	Password  string // 平文。サーバ側でSHA256照合
	IPAddress string // ログ用
}

// LoginResponse ログイン応答
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	StaffID     string `json:"staffId"`
	StaffName   string `json:"staffName"`
	Role        string `json:"role"`
	TenantID    string `json:"tenant_id"`
}

// Session Redisに保存されるセッション
type Session struct {
	StaffID   string `json:"staffId"`
	TenantID  string `json:"tenantId"`
	StaffName string `json:"staffName"`
	Role      string `json:"role"`
}

func sessionKey(token string) string {
	return "nasreco:session:" + token
}

// Login アカウント・パスワードで認証し、セッショントークンを発行
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Account = strings.TrimSpace(req.Account)
	if req.TenantID == "" || req.Account == "" || req.Password == "" {
		s.logger.Warn("Staff login failed: missing credentials",
			zap.String("ip_address", req.IPAddress),
			zap.String("reason", "missing_credentials"),
		)
		return nil, fmt.Errorf("missing credentials")
	}

	staff, err := s.staffRepo.GetStaffByAccount(ctx, req.TenantID, req.Account)
	if err != nil {
		s.logger.Warn("Staff login failed: invalid credentials",
			zap.String("tenant_id", req.TenantID),
			zap.String("ip_address", req.IPAddress),
			zap.String("reason", "invalid_credentials"),
		)
		return nil, fmt.Errorf("invalid credentials")
	}

	hash := sha256.Sum256([]byte(req.Password))
	if subtle.ConstantTimeCompare(hash[:], staff.PasswordHash) != 1 {
		s.logger.Warn("Staff login failed: invalid credentials",
			zap.String("tenant_id", req.TenantID),
			zap.String("ip_address", req.IPAddress),
			zap.String("reason", "invalid_credentials"),
		)
		return nil, fmt.Errorf("invalid credentials")
	}

	if staff.Status != "active" {
		s.logger.Warn("Staff login failed: account not active",
			zap.String("staff_id", staff.StaffID),
			zap.String("tenant_id", req.TenantID),
			zap.String("status", staff.Status),
			zap.String("reason", "account_not_active"),
		)
		return nil, fmt.Errorf("staff is not active")
	}

	token := uuid.NewString()
	session := Session{
		StaffID:   staff.StaffID,
		TenantID:  staff.TenantID,
		StaffName: staff.StaffName,
		Role:      staff.Role,
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.sessions.Set(ctx, sessionKey(token), string(payload), sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Staff login successful",
		zap.String("staff_id", staff.StaffID),
		zap.String("tenant_id", staff.TenantID),
		zap.String("role", staff.Role),
		zap.String("ip_address", req.IPAddress),
	)

	return &LoginResponse{
		AccessToken: token,
		StaffID:     staff.StaffID,
		StaffName:   staff.StaffName,
		Role:        staff.Role,
		TenantID:    staff.TenantID,
	}, nil
}

// Logout セッションを破棄（冪等）
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Del(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ValidateToken トークンからセッションを復元。期限切れ・未知はErrMiss
func (s *authService) ValidateToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, store.ErrMiss
	}
	payload, err := s.sessions.Get(ctx, sessionKey(token))
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}
