package httpapi

import (
	"net/http"

	"nasreco-data/internal/service"

	"go.uber.org/zap"
)

// AuthHandler 認証Handler
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler 認証Handlerを作成
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// requireSession Bearerトークンを検証し、無効なら60401+401を書いてfalse
func (h *AuthHandler) requireSession(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	session, err := h.authService.ValidateToken(r.Context(), bearerToken(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, TokenExpired())
		return nil, false
	}
	return session, true
}

type loginBody struct {
	TenantID string `json:"tenant_id"`
	Account  string `json:"account"`
	Password string `json:"password"`
}

// Login POST /auth/api/v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	tenantID := body.TenantID
	if tenantID == "" {
		tenantID, _ = tenantIDFromReq(r)
	}

	resp, err := h.authService.Login(r.Context(), service.LoginRequest{
		TenantID:  tenantID,
		Account:   body.Account,
		Password:  body.Password,
		IPAddress: r.RemoteAddr,
	})
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Logout POST /auth/api/v1/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), bearerToken(r)); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
