package aggregator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"nasreco-data/internal/domain"
)

// MedicationEntry is one row of the medication-check list: either a real
// (fully signed) record or a synthesized "not yet recorded" placeholder.
type MedicationEntry struct {
	ID           string  `json:"id"`
	ResidentID   string  `json:"residentId"`
	ResidentName string  `json:"residentName"`
	RoomNumber   string  `json:"roomNumber"`
	Floor        string  `json:"floor"`
	RecordDate   string  `json:"recordDate"`
	Timing       string  `json:"timing"`
	Confirmer1   *string `json:"confirmer1"`
	Confirmer2   *string `json:"confirmer2"`
	Notes        *string `json:"notes"`
	Recorded     bool    `json:"recorded"`
}

// ResolveMedicationDay combines the existing medication records for one date
// with placeholders for every resident who is scheduled (weekday flag on and
// slot flag on) but not yet recorded. timing is a single canonical slot or
// domain.TimingAll.
//
// Half-signed rows (one confirmer empty) never surface as real entries; the
// placeholder for their slot is synthesized as if no row existed.
//
// Output ordering: room number ascending, then canonical slot order.
func ResolveMedicationDay(
	date string,
	timing string,
	records []domain.MedicationRecord,
	residents []*domain.Resident,
) ([]MedicationEntry, error) {
	return resolveMedication([]string{date}, timing, records, residents)
}

// ResolveMedicationRange is the inclusive date-range variant: the per-slot /
// per-weekday matching is repeated for every date in [from, to], with the
// existing-record lookup keyed additionally by date. All slots are covered.
func ResolveMedicationRange(
	from, to string,
	records []domain.MedicationRecord,
	residents []*domain.Resident,
) ([]MedicationEntry, error) {
	start, err := time.ParseInLocation("2006-01-02", from, JST)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, JST)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("date range %s..%s is reversed", from, to)
	}

	dates := make([]string, 0, end.Sub(start)/(24*time.Hour)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return resolveMedication(dates, domain.TimingAll, records, residents)
}

func resolveMedication(
	dates []string,
	timing string,
	records []domain.MedicationRecord,
	residents []*domain.Resident,
) ([]MedicationEntry, error) {
	slots := []string{timing}
	if timing == domain.TimingAll {
		slots = domain.TimingSlots
	} else if !domain.IsValidTiming(timing) {
		return nil, fmt.Errorf("unknown timing slot %q", timing)
	}

	weekdays := make(map[string]time.Weekday, len(dates))
	for _, d := range dates {
		day, err := time.ParseInLocation("2006-01-02", d, JST)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
		weekdays[d] = day.Weekday()
	}

	byID := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byID[r.ResidentID] = r
	}

	// Placeholder ids carry the date once more than one (date, slot) pair
	// is in play, so ids stay unique across the whole list.
	includeDate := len(dates) > 1 || len(slots) > 1

	entries := make([]MedicationEntry, 0, len(residents)*len(slots))
	existing := make(map[string]struct{}, len(records))

	for i := range records {
		rec := &records[i]
		if !rec.Recorded() {
			continue
		}
		if _, ok := weekdays[rec.RecordDate]; !ok {
			continue
		}
		if timing != domain.TimingAll && rec.Timing != timing {
			continue
		}
		res, ok := byID[rec.ResidentID]
		if !ok {
			continue
		}
		existing[medKey(rec.ResidentID, rec.RecordDate, rec.Timing)] = struct{}{}
		c1, c2 := rec.Confirmer1, rec.Confirmer2
		entry := MedicationEntry{
			ID:           rec.RecordID,
			ResidentID:   res.ResidentID,
			ResidentName: res.ResidentName,
			RoomNumber:   res.RoomNumber,
			Floor:        res.Floor,
			RecordDate:   rec.RecordDate,
			Timing:       rec.Timing,
			Confirmer1:   &c1,
			Confirmer2:   &c2,
			Recorded:     true,
		}
		if rec.Notes != "" {
			notes := rec.Notes
			entry.Notes = &notes
		}
		entries = append(entries, entry)
	}

	for _, date := range dates {
		wd := weekdays[date]
		for _, res := range residents {
			if !res.MedicationSchedule.EnabledOn(wd) {
				continue
			}
			for _, slot := range slots {
				if !res.MedicationSchedule.SlotEnabled(slot) {
					continue
				}
				if _, ok := existing[medKey(res.ResidentID, date, slot)]; ok {
					continue
				}
				id := "placeholder-" + res.ResidentID + "-" + slot
				if includeDate {
					id = "placeholder-" + res.ResidentID + "-" + date + "-" + slot
				}
				entries = append(entries, MedicationEntry{
					ID:           id,
					ResidentID:   res.ResidentID,
					ResidentName: res.ResidentName,
					RoomNumber:   res.RoomNumber,
					Floor:        res.Floor,
					RecordDate:   date,
					Timing:       slot,
				})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := strings.Compare(entries[i].RoomNumber, entries[j].RoomNumber); c != 0 {
			return c < 0
		}
		if entries[i].RecordDate != entries[j].RecordDate {
			return entries[i].RecordDate < entries[j].RecordDate
		}
		return TimingOrder(entries[i].Timing) < TimingOrder(entries[j].Timing)
	})
	return entries, nil
}

func medKey(residentID, date, timing string) string {
	return residentID + "|" + date + "|" + timing
}
