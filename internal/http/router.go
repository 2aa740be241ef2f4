package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 標準ライブラリのhttp.ServeMuxを使用（サードパーティのルータ依存を避ける）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, withMetrics(pattern, h))
}

// HandleHandler http.Handler接口向け（/metrics等）
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAuthRoutes 認証ルートを登録
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, req)
	})
	r.Handle("/auth/api/v1/logout", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Logout(w, req)
	})
}

// RegisterRecordRoutes 日次タイムラインと服薬チェックのルートを登録
func (r *Router) RegisterRecordRoutes(daily *DailyRecordsHandler, medication *MedicationHandler) {
	r.Handle("/records/api/v1/daily-records", daily.ServeHTTP)
	r.Handle("/records/api/v1/daily-records/", daily.ServeHTTP)

	r.Handle("/records/api/v1/medication-checks", medication.ServeHTTP)
	r.Handle("/records/api/v1/medication-checks/", medication.ServeHTTP)
	r.Handle("/records/api/v1/medication-records", medication.ServeHTTP)
	r.Handle("/records/api/v1/medication-records/", medication.ServeHTTP)
}

// RegisterAdminRoutes 入居者管理・施設設定のルートを登録
func (r *Router) RegisterAdminRoutes(resident *ResidentHandler, facility *FacilityHandler) {
	r.Handle("/admin/api/v1/residents", resident.ServeHTTP)
	r.Handle("/admin/api/v1/residents/", resident.ServeHTTP)

	r.Handle("/admin/api/v1/facility-settings", facility.ServeHTTP)
}

// RegisterMetricsRoute /metricsを登録
func (r *Router) RegisterMetricsRoute() {
	r.HandleHandler("/metrics", MetricsHandler())
}
