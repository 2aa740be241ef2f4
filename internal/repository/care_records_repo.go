package repository

import (
	"context"
	"time"

	"nasreco-data/internal/domain"
)

// CareRecordsRepository 日常記録Repository接口
// 日次タイムライン集計が読む9種類の記録のウィンドウ照会。書き込み系の
// CRUDハンドラは各記録のテーブルを直接扱うため、ここは読み取り専用。
// メソッド形状は aggregator.RecordSource と一致する。
type CareRecordsRepository interface {
	CareNotes(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CareNote, error)
	Meals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.MealRecord, error)
	MedicationRecords(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error)
	Vitals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.VitalRecord, error)
	Excretions(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExcretionRecord, error)
	Cleanings(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CleaningRecord, error)
	Weights(ctx context.Context, tenantID string, from, to time.Time) ([]domain.WeightRecord, error)
	NursingRecords(ctx context.Context, tenantID string, from, to time.Time) ([]domain.NursingRecord, error)
}
