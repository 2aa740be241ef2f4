package httpapi

import (
	"net/http"
	"strings"

	"nasreco-data/internal/domain"
	"nasreco-data/internal/service"

	"go.uber.org/zap"
)

// ResidentHandler 入居者管理Handler
type ResidentHandler struct {
	residentService service.ResidentService
	auth            *AuthHandler
	logger          *zap.Logger
}

// NewResidentHandler 入居者管理Handlerを作成
func NewResidentHandler(residentService service.ResidentService, auth *AuthHandler, logger *zap.Logger) *ResidentHandler {
	return &ResidentHandler{residentService: residentService, auth: auth, logger: logger}
}

// ServeHTTP 実装: /admin/api/v1/residents 配下
func (h *ResidentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/admin/api/v1/residents" && r.Method == http.MethodGet:
		h.ListResidents(w, r)
	case path == "/admin/api/v1/residents" && r.Method == http.MethodPost:
		h.CreateResident(w, r)
	// UpdateMedicationSchedule（UpdateResidentより先。パスがより具体的なため）
	case strings.HasSuffix(path, "/medication-schedule") && r.Method == http.MethodPut:
		residentID := strings.TrimSuffix(path, "/medication-schedule")
		residentID = strings.TrimPrefix(residentID, "/admin/api/v1/residents/")
		if residentID != "" && !strings.Contains(residentID, "/") {
			h.UpdateMedicationSchedule(w, r, residentID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasPrefix(path, "/admin/api/v1/residents/") && r.Method == http.MethodGet:
		residentID := strings.TrimPrefix(path, "/admin/api/v1/residents/")
		if residentID != "" && !strings.Contains(residentID, "/") {
			h.GetResident(w, r, residentID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasPrefix(path, "/admin/api/v1/residents/") && r.Method == http.MethodPut:
		residentID := strings.TrimPrefix(path, "/admin/api/v1/residents/")
		if residentID != "" && !strings.Contains(residentID, "/") {
			h.UpdateResident(w, r, residentID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasPrefix(path, "/admin/api/v1/residents/") && r.Method == http.MethodDelete:
		residentID := strings.TrimPrefix(path, "/admin/api/v1/residents/")
		if residentID != "" && !strings.Contains(residentID, "/") {
			h.DeleteResident(w, r, residentID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListResidents GET /admin/api/v1/residents
func (h *ResidentHandler) ListResidents(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	q := r.URL.Query()
	resp, err := h.residentService.ListResidents(r.Context(), tenantID, service.ListResidentsRequest{
		Floor:  q.Get("floor"),
		Status: q.Get("status"),
		Search: q.Get("search"),
		Page:   parseInt(q.Get("page"), 1),
		Size:   parseInt(q.Get("size"), 50),
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetResident GET /admin/api/v1/residents/{id}
func (h *ResidentHandler) GetResident(w http.ResponseWriter, r *http.Request, residentID string) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	resident, err := h.residentService.GetResident(r.Context(), tenantID, residentID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resident))
}

// CreateResident POST /admin/api/v1/residents
func (h *ResidentHandler) CreateResident(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	var body service.ResidentRequest
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	residentID, err := h.residentService.CreateResident(r.Context(), tenantID, body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"residentId": residentID}))
}

// UpdateResident PUT /admin/api/v1/residents/{id}
func (h *ResidentHandler) UpdateResident(w http.ResponseWriter, r *http.Request, residentID string) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	var body service.ResidentRequest
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := h.residentService.UpdateResident(r.Context(), tenantID, residentID, body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// UpdateMedicationSchedule PUT /admin/api/v1/residents/{id}/medication-schedule
func (h *ResidentHandler) UpdateMedicationSchedule(w http.ResponseWriter, r *http.Request, residentID string) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	var schedule domain.WeeklyMedicationSchedule
	if err := readBodyJSON(r, 1<<20, &schedule); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := h.residentService.UpdateMedicationSchedule(r.Context(), tenantID, residentID, schedule); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// DeleteResident DELETE /admin/api/v1/residents/{id}
func (h *ResidentHandler) DeleteResident(w http.ResponseWriter, r *http.Request, residentID string) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	if err := h.residentService.DeleteResident(r.Context(), tenantID, residentID); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
