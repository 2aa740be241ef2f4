package httpapi

import (
	"net/http"

	"nasreco-data/internal/domain"
	"nasreco-data/internal/service"

	"go.uber.org/zap"
)

// FacilityHandler 施設設定Handler
type FacilityHandler struct {
	facilityService service.FacilityService
	auth            *AuthHandler
	logger          *zap.Logger
}

// NewFacilityHandler 施設設定Handlerを作成
func NewFacilityHandler(facilityService service.FacilityService, auth *AuthHandler, logger *zap.Logger) *FacilityHandler {
	return &FacilityHandler{facilityService: facilityService, auth: auth, logger: logger}
}

// ServeHTTP 実装: /admin/api/v1/facility-settings
func (h *FacilityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetSettings(w, r)
	case http.MethodPut:
		h.UpdateSettings(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// GetSettings GET /admin/api/v1/facility-settings
func (h *FacilityHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	settings, err := h.facilityService.GetSettings(r.Context(), tenantID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(settings))
}

// UpdateSettings PUT /admin/api/v1/facility-settings
func (h *FacilityHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	var settings domain.FacilitySettings
	if err := readBodyJSON(r, 1<<20, &settings); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	settings.TenantID = tenantID

	if err := h.facilityService.UpdateSettings(r.Context(), tenantID, &settings); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(settings))
}
