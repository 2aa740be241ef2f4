package service

import (
	"context"
	"fmt"
	"time"

	"nasreco-data/internal/aggregator"
	"nasreco-data/internal/config"
	"nasreco-data/internal/repository"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookNotifier 申し送りWebhook送信サービス接口
// 日次タイムラインのサマリを外部（申し送りチャット等）へPOSTする。
type WebhookNotifier interface {
	NotifyDailySummary(ctx context.Context, tenantID string, date string, entries []aggregator.Entry) error
}

// DailySummaryPayload Webhookに送るペイロード
type DailySummaryPayload struct {
	TenantID   string         `json:"tenant_id"`
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	TypeCounts map[string]int `json:"typeCounts"`
	SentAt     string         `json:"sentAt"` // RFC3339
}

type webhookNotifier struct {
	httpClient   *resty.Client
	facilityRepo repository.FacilityRepository
	fallback     config.WebhookConfig
	logger       *zap.Logger
}

// NewWebhookNotifier Webhook送信サービスを作成。
// 送信先は施設設定（テナント単位）が優先、無ければ環境設定のURL。
func NewWebhookNotifier(cfg config.WebhookConfig, facilityRepo repository.FacilityRepository, logger *zap.Logger) WebhookNotifier {
	client := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &webhookNotifier{
		httpClient:   client,
		facilityRepo: facilityRepo,
		fallback:     cfg,
		logger:       logger,
	}
}

// NotifyDailySummary 日次サマリをWebhookへ送信
func (n *webhookNotifier) NotifyDailySummary(ctx context.Context, tenantID string, date string, entries []aggregator.Entry) error {
	url, err := n.resolveURL(ctx, tenantID)
	if err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("webhook is not configured")
	}

	typeCounts := make(map[string]int, 8)
	for i := range entries {
		typeCounts[entries[i].RecordType]++
	}
	payload := DailySummaryPayload{
		TenantID:   tenantID,
		Date:       date,
		Total:      len(entries),
		TypeCounts: typeCounts,
		SentAt:     time.Now().In(aggregator.JST).Format(time.RFC3339),
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		n.logger.Error("Webhook delivery failed",
			zap.String("tenant_id", tenantID),
			zap.String("date", date),
			zap.Error(err),
		)
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	if resp.IsError() {
		n.logger.Error("Webhook endpoint returned error",
			zap.String("tenant_id", tenantID),
			zap.String("date", date),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode())
	}

	n.logger.Info("Daily summary delivered to webhook",
		zap.String("tenant_id", tenantID),
		zap.String("date", date),
		zap.Int("entry_count", len(entries)),
	)
	return nil
}

func (n *webhookNotifier) resolveURL(ctx context.Context, tenantID string) (string, error) {
	settings, err := n.facilityRepo.GetSettings(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("failed to load facility settings: %w", err)
	}
	if settings.WebhookEnabled && settings.WebhookURL != "" {
		return settings.WebhookURL, nil
	}
	if n.fallback.Enabled {
		return n.fallback.URL, nil
	}
	return "", nil
}
