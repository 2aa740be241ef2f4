package aggregator

import "time"

// 勤務帯（shift buckets for excretion / cleaning / weight records）
const (
	ShiftDaytime = "daytime"
	ShiftNight   = "night"
)

// Day shift runs 08:31〜17:30 inclusive, facility-wide.
const (
	daytimeStartMinute = 8*60 + 31  // 511
	daytimeEndMinute   = 17*60 + 30 // 1050
)

// ShiftCategory classifies a timestamp into the daytime or night shift using
// only its local hour and minute.
func ShiftCategory(t time.Time) string {
	m := t.Hour()*60 + t.Minute()
	if m >= daytimeStartMinute && m <= daytimeEndMinute {
		return ShiftDaytime
	}
	return ShiftNight
}
