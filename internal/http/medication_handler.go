package httpapi

import (
	"net/http"
	"strings"

	"nasreco-data/internal/service"

	"go.uber.org/zap"
)

// MedicationHandler 服薬チェック表Handler
type MedicationHandler struct {
	medicationService service.MedicationService
	auth              *AuthHandler
	logger            *zap.Logger
}

// NewMedicationHandler 服薬チェックHandlerを作成
func NewMedicationHandler(medicationService service.MedicationService, auth *AuthHandler, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService, auth: auth, logger: logger}
}

// ServeHTTP 実装: /records/api/v1/medication-checks, /records/api/v1/medication-records 配下
func (h *MedicationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/records/api/v1/medication-checks" && r.Method == http.MethodGet:
		h.GetChecks(w, r)
	case path == "/records/api/v1/medication-checks/range" && r.Method == http.MethodGet:
		h.GetChecksRange(w, r)
	case path == "/records/api/v1/medication-records" && r.Method == http.MethodPost:
		h.CreateRecord(w, r)
	case strings.HasPrefix(path, "/records/api/v1/medication-records/") && r.Method == http.MethodPut:
		recordID := strings.TrimPrefix(path, "/records/api/v1/medication-records/")
		if recordID == "" || strings.Contains(recordID, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.UpdateRecord(w, r, recordID)
	case strings.HasPrefix(path, "/records/api/v1/medication-records/") && r.Method == http.MethodDelete:
		recordID := strings.TrimPrefix(path, "/records/api/v1/medication-records/")
		if recordID == "" || strings.Contains(recordID, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.DeleteRecord(w, r, recordID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// GetChecks GET /records/api/v1/medication-checks?date=&timing=&floor=
func (h *MedicationHandler) GetChecks(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	q := r.URL.Query()
	resp, err := h.medicationService.GetChecks(r.Context(), tenantID, service.MedicationChecksRequest{
		Date:   q.Get("date"),
		Timing: q.Get("timing"),
		Floor:  q.Get("floor"),
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetChecksRange GET /records/api/v1/medication-checks/range?from=&to=&floor=
func (h *MedicationHandler) GetChecksRange(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	q := r.URL.Query()
	resp, err := h.medicationService.GetChecksRange(r.Context(), tenantID, service.MedicationRangeRequest{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Floor: q.Get("floor"),
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// CreateRecord POST /records/api/v1/medication-records
func (h *MedicationHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	var body service.CreateMedicationRequest
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	recordID, err := h.medicationService.CreateRecord(r.Context(), tenantID, body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"recordId": recordID}))
}

// UpdateRecord PUT /records/api/v1/medication-records/{id}
func (h *MedicationHandler) UpdateRecord(w http.ResponseWriter, r *http.Request, recordID string) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	var body service.UpdateMedicationRequest
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := h.medicationService.UpdateRecord(r.Context(), tenantID, recordID, body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// DeleteRecord DELETE /records/api/v1/medication-records/{id}
func (h *MedicationHandler) DeleteRecord(w http.ResponseWriter, r *http.Request, recordID string) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	if err := h.medicationService.DeleteRecord(r.Context(), tenantID, recordID); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
