package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"nasreco-data/internal/service"

	"go.uber.org/zap"
)

// DailyRecordsHandler 日次タイムラインHandler
type DailyRecordsHandler struct {
	dailyService service.DailyRecordService
	notifier     service.WebhookNotifier
	auth         *AuthHandler
	logger       *zap.Logger
}

// NewDailyRecordsHandler 日次タイムラインHandlerを作成
func NewDailyRecordsHandler(
	dailyService service.DailyRecordService,
	notifier service.WebhookNotifier,
	auth *AuthHandler,
	logger *zap.Logger,
) *DailyRecordsHandler {
	return &DailyRecordsHandler{
		dailyService: dailyService,
		notifier:     notifier,
		auth:         auth,
		logger:       logger,
	}
}

// ServeHTTP 実装: /records/api/v1/daily-records 配下
func (h *DailyRecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/records/api/v1/daily-records" && r.Method == http.MethodGet:
		h.GetDailyRecords(w, r)
	case path == "/records/api/v1/daily-records/export" && r.Method == http.MethodGet:
		h.ExportDailyRecords(w, r)
	case path == "/records/api/v1/daily-records/notify" && r.Method == http.MethodPost:
		h.NotifyDailySummary(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *DailyRecordsHandler) parseRequest(r *http.Request) service.DailyRecordsRequest {
	q := r.URL.Query()
	req := service.DailyRecordsRequest{
		Date:             q.Get("date"),
		Floor:            q.Get("floor"),
		IncludeNightTail: q.Get("includeNightTail") == "true",
		TimeCategory:     q.Get("timeCategory"),
	}
	if types := q.Get("types"); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.Types = append(req.Types, t)
			}
		}
	}
	return req
}

// GetDailyRecords GET /records/api/v1/daily-records
func (h *DailyRecordsHandler) GetDailyRecords(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	resp, err := h.dailyService.GetDailyRecords(r.Context(), tenantID, h.parseRequest(r))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// ExportDailyRecords GET /records/api/v1/daily-records/export
// 日次タイムラインをExcelでダウンロード
func (h *DailyRecordsHandler) ExportDailyRecords(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	req := h.parseRequest(r)
	resp, err := h.dailyService.GetDailyRecords(r.Context(), tenantID, req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	data, err := GenerateDailyRecordsExport(req.Date, resp.Entries)
	if err != nil {
		h.logger.Error("Failed to generate daily records export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	filename := fmt.Sprintf("daily-records-%s.xlsx", req.Date)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// NotifyDailySummary POST /records/api/v1/daily-records/notify
// 日次サマリを申し送りWebhookへ送信
func (h *DailyRecordsHandler) NotifyDailySummary(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.requireSession(w, r); !ok {
		return
	}
	tenantID, ok := tenantIDFromReq(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("tenant_id is required"))
		return
	}

	req := h.parseRequest(r)
	resp, err := h.dailyService.GetDailyRecords(r.Context(), tenantID, req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	if err := h.notifier.NotifyDailySummary(r.Context(), tenantID, req.Date, resp.Entries); err != nil {
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"date": req.Date, "total": resp.Total}))
}
