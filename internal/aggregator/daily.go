package aggregator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"nasreco-data/internal/domain"

	"go.uber.org/zap"
)

// Entry is one display-ready row of the daily timeline. Engine-owned and
// ephemeral: it lives for one request/response cycle only.
type Entry struct {
	ID           string `json:"id"`
	RecordType   string `json:"recordType"`
	ResidentID   string `json:"residentId"`
	RoomNumber   string `json:"roomNumber"`
	ResidentName string `json:"residentName"`
	RecordTime   string `json:"recordTime"` // RFC3339, fixed +09:00
	Content      string `json:"content"`
	StaffName    string `json:"staffName"`
	// Set for 排泄/清掃リネン/体重 only.
	TimeCategory string `json:"timeCategory,omitempty"`

	at time.Time // sort key, not serialized
}

// DailyQuery selects what the daily aggregate covers.
type DailyQuery struct {
	// Date is the target calendar day, "YYYY-MM-DD".
	Date string
	// Types restricts output to the listed display record types; empty
	// means all types.
	Types []string
	// IncludeNightTail extends the window to the next day 08:30:59 so the
	// tail of the night shift is captured.
	IncludeNightTail bool
	// TimeCategory filters 排泄/清掃リネン/体重 entries by shift bucket
	// ("daytime" or "night"); other types are unaffected.
	TimeCategory string
}

// RecordSource supplies the per-type record rows inside a time window.
// Each method is called at most once per aggregation; a failing method
// degrades to zero records of that type (see Aggregate).
type RecordSource interface {
	CareNotes(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CareNote, error)
	Meals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.MealRecord, error)
	MedicationRecords(ctx context.Context, tenantID string, dates []string) ([]domain.MedicationRecord, error)
	Vitals(ctx context.Context, tenantID string, from, to time.Time) ([]domain.VitalRecord, error)
	Excretions(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExcretionRecord, error)
	Cleanings(ctx context.Context, tenantID string, from, to time.Time) ([]domain.CleaningRecord, error)
	Weights(ctx context.Context, tenantID string, from, to time.Time) ([]domain.WeightRecord, error)
	NursingRecords(ctx context.Context, tenantID string, from, to time.Time) ([]domain.NursingRecord, error)
}

// DailyAggregator merges the nine record sources into one chronological
// timeline per day. It performs reads only and keeps no state between calls.
type DailyAggregator struct {
	source RecordSource
	logger *zap.Logger
}

// NewDailyAggregator creates a daily aggregator over the given record source.
func NewDailyAggregator(source RecordSource, logger *zap.Logger) *DailyAggregator {
	return &DailyAggregator{source: source, logger: logger}
}

// Aggregate builds the timeline for q.Date, sorted by record time descending.
// Ties keep insertion order, which is the fixed source order: 介護記録, 食事,
// 服薬, バイタル, 排泄, 清掃リネン, 体重, 看護記録系.
//
// roster must hold every active resident; rows referencing residents outside
// it are dropped. staff resolves staff references to display names.
//
// A failing per-type fetch is logged and treated as zero records of that
// type: an incomplete daily view beats a failed one on the handover screen.
func (a *DailyAggregator) Aggregate(
	ctx context.Context,
	tenantID string,
	q DailyQuery,
	roster map[string]*domain.Resident,
	staff *StaffDirectory,
) ([]Entry, error) {
	day, err := time.ParseInLocation("2006-01-02", q.Date, JST)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", q.Date, err)
	}

	from := day
	to := day.Add(24*time.Hour - time.Second) // 23:59:59
	if q.IncludeNightTail {
		// Next day up to the end of the night shift (08:30:59).
		to = day.Add(24*time.Hour + 8*time.Hour + 30*time.Minute + 59*time.Second)
	}

	entries := make([]Entry, 0, 64)

	if a.wants(q, RecordTypeCareNote) {
		rows, err := a.source.CareNotes(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeCareNote, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				if !ok || rec.Content == "" {
					continue
				}
				entries = append(entries, a.entry(rec.RecordID, RecordTypeCareNote, res,
					rec.RecordTime, rec.Content, staff.Resolve(rec.StaffRef)))
			}
		}
	}

	if a.wants(q, RecordTypeMeal) {
		rows, err := a.source.Meals(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeMeal, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				// Only explicitly stamped meal entries are surfaced.
				if !ok || rec.Content == "" || rec.StaffSign == "" {
					continue
				}
				content := rec.MealType
				if content == "" {
					content = rec.Content
				} else {
					content += " " + rec.Content
				}
				entries = append(entries, a.entry(rec.RecordID, RecordTypeMeal, res,
					mealDisplayTime(rec.RecordTime, rec.MealType), content, staff.Resolve(rec.StaffSign)))
			}
		}
	}

	if a.wants(q, RecordTypeMedication) {
		dates := []string{q.Date}
		if q.IncludeNightTail {
			dates = append(dates, day.AddDate(0, 0, 1).Format("2006-01-02"))
		}
		rows, err := a.source.MedicationRecords(ctx, tenantID, dates)
		if err != nil {
			a.fetchFailed(RecordTypeMedication, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				// Both confirmers must have signed; half-signed rows are absent.
				if !ok || !rec.Recorded() {
					continue
				}
				recDay, err := time.ParseInLocation("2006-01-02", rec.RecordDate, JST)
				if err != nil {
					continue
				}
				at := medicationDisplayTime(recDay, rec.Timing, rec.CreatedAt)
				if at.Before(from) || at.After(to) {
					continue
				}
				content := rec.Timing
				if rec.Notes != "" {
					content += " " + rec.Notes
				}
				entries = append(entries, a.entry(rec.RecordID, RecordTypeMedication, res,
					at, content, staff.Resolve(rec.Confirmer1)))
			}
		}
	}

	if a.wants(q, RecordTypeVital) {
		rows, err := a.source.Vitals(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeVital, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				if !ok || rec.StaffSign == "" {
					continue
				}
				content := formatVitalContent(rec)
				if content == "" {
					continue
				}
				entries = append(entries, a.entry(rec.RecordID, RecordTypeVital, res,
					rec.RecordTime, content, staff.Resolve(rec.StaffSign)))
			}
		}
	}

	if a.wants(q, RecordTypeExcretion) {
		rows, err := a.source.Excretions(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeExcretion, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				content := joinNonEmpty(rec.Kind, rec.Amount, rec.Content)
				if !ok || content == "" {
					continue
				}
				e := a.entry(rec.RecordID, RecordTypeExcretion, res,
					rec.RecordTime, content, staff.Resolve(rec.StaffRef))
				e.TimeCategory = ShiftCategory(rec.RecordTime.In(JST))
				if a.shiftExcluded(q, e.TimeCategory) {
					continue
				}
				entries = append(entries, e)
			}
		}
	}

	if a.wants(q, RecordTypeCleaning) {
		rows, err := a.source.Cleanings(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeCleaning, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				content := joinNonEmpty(rec.Kind, rec.Content)
				if !ok || content == "" {
					continue
				}
				e := a.entry(rec.RecordID, RecordTypeCleaning, res,
					rec.RecordTime, content, staff.Resolve(rec.StaffRef))
				e.TimeCategory = ShiftCategory(rec.RecordTime.In(JST))
				if a.shiftExcluded(q, e.TimeCategory) {
					continue
				}
				entries = append(entries, e)
			}
		}
	}

	if a.wants(q, RecordTypeWeight) {
		rows, err := a.source.Weights(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeWeight, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				res, ok := roster[rec.ResidentID]
				if !ok {
					continue
				}
				content := rec.Content
				if rec.WeightKg != nil {
					content = joinNonEmpty(fmt.Sprintf("%.1fkg", *rec.WeightKg), rec.Content)
				}
				if content == "" {
					continue
				}
				e := a.entry(rec.RecordID, RecordTypeWeight, res,
					rec.RecordTime, content, staff.Resolve(rec.StaffRef))
				e.TimeCategory = ShiftCategory(rec.RecordTime.In(JST))
				if a.shiftExcluded(q, e.TimeCategory) {
					continue
				}
				entries = append(entries, e)
			}
		}
	}

	if a.wantsAny(q, RecordTypeNursingNote, RecordTypeMedicalNote, RecordTypeTreatment) {
		rows, err := a.source.NursingRecords(ctx, tenantID, from, to)
		if err != nil {
			a.fetchFailed(RecordTypeNursingNote, err)
		} else {
			for i := range rows {
				rec := &rows[i]
				content := rec.Content()
				if content == "" {
					continue
				}
				recordType := NormalizeCategory(rec.Category, rec.Interventions != "", rec.Notes != "")
				if !a.wants(q, recordType) {
					continue
				}
				e := Entry{
					ID:         rec.RecordID,
					RecordType: recordType,
					RecordTime: rec.RecordTime.In(JST).Format(time.RFC3339),
					Content:    content,
					StaffName:  staff.Resolve(rec.StaffRef),
					at:         rec.RecordTime,
				}
				if rec.ResidentID != nil {
					res, ok := roster[*rec.ResidentID]
					if !ok {
						continue
					}
					e.ResidentID = res.ResidentID
					e.RoomNumber = res.RoomNumber
					e.ResidentName = res.ResidentName
				}
				// Facility-wide notes (no resident) stay in the aggregate.
				entries = append(entries, e)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})
	return entries, nil
}

func (a *DailyAggregator) entry(id, recordType string, res *domain.Resident, at time.Time, content, staffName string) Entry {
	return Entry{
		ID:           id,
		RecordType:   recordType,
		ResidentID:   res.ResidentID,
		RoomNumber:   res.RoomNumber,
		ResidentName: res.ResidentName,
		RecordTime:   at.In(JST).Format(time.RFC3339),
		Content:      content,
		StaffName:    staffName,
		at:           at,
	}
}

func (a *DailyAggregator) wants(q DailyQuery, recordType string) bool {
	if len(q.Types) == 0 {
		return true
	}
	for _, t := range q.Types {
		if t == recordType {
			return true
		}
	}
	return false
}

func (a *DailyAggregator) wantsAny(q DailyQuery, types ...string) bool {
	if len(q.Types) == 0 {
		return true
	}
	for _, t := range types {
		if a.wants(q, t) {
			return true
		}
	}
	return false
}

func (a *DailyAggregator) shiftExcluded(q DailyQuery, timeCategory string) bool {
	return q.TimeCategory != "" && q.TimeCategory != timeCategory
}

func (a *DailyAggregator) fetchFailed(recordType string, err error) {
	a.logger.Warn("daily aggregation: record fetch failed, continuing without this type",
		zap.String("record_type", recordType),
		zap.Error(err),
	)
}

// formatVitalContent renders the measured values plus the note, e.g.
// "KT36.5 P72 BP120/80 SpO2 98 入浴前".
func formatVitalContent(v *domain.VitalRecord) string {
	parts := make([]string, 0, 5)
	if v.Temperature != nil {
		parts = append(parts, fmt.Sprintf("KT%.1f", *v.Temperature))
	}
	if v.Pulse != nil {
		parts = append(parts, fmt.Sprintf("P%d", *v.Pulse))
	}
	if v.BPHigh != nil && v.BPLow != nil {
		parts = append(parts, fmt.Sprintf("BP%d/%d", *v.BPHigh, *v.BPLow))
	} else if v.BPHigh != nil {
		parts = append(parts, fmt.Sprintf("BP%d/-", *v.BPHigh))
	}
	if v.SpO2 != nil {
		parts = append(parts, fmt.Sprintf("SpO2 %d", *v.SpO2))
	}
	if v.Note != "" {
		parts = append(parts, v.Note)
	}
	return strings.Join(parts, " ")
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
