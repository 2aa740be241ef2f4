package aggregator

import (
	"time"

	"nasreco-data/internal/domain"
)

// JST: all record times are rendered at the fixed +09:00 offset.
var JST = time.FixedZone("JST", 9*60*60)

type clock struct {
	hour, minute int
}

// Conventional clock time per timing slot, used as the display time of a
// medication entry in the daily view. 頓服 has no conventional time; its
// entry in this table is only a fallback, the actual creation time wins
// (see exactTimeSlots).
var slotClock = map[string]clock{
	domain.TimingWake:          {6, 0},
	domain.TimingPreBreakfast:  {7, 30},
	domain.TimingPostBreakfast: {8, 30},
	domain.TimingPreLunch:      {11, 30},
	domain.TimingPostLunch:     {12, 30},
	domain.TimingPreDinner:     {17, 30},
	domain.TimingPostDinner:    {18, 30},
	domain.TimingPreSleep:      {21, 0},
	domain.TimingAsNeeded:      {12, 0},
}

// Slots whose exact administration time matters more than the slot
// convention: the record's creation time-of-day overrides the table above.
var exactTimeSlots = map[string]struct{}{
	domain.TimingPreLunch: {},
	domain.TimingPreDinner: {},
	domain.TimingAsNeeded: {},
}

// Fixed clock time per meal label, layered onto the record's calendar date.
var mealClock = map[string]clock{
	domain.MealBreakfast: {8, 0},
	domain.MealLunch:     {12, 0},
	domain.MealSnack:     {15, 0},
	domain.MealDinner:    {18, 0},
}

var timingOrder = buildTimingOrder()

func buildTimingOrder() map[string]int {
	m := make(map[string]int, len(domain.TimingSlots))
	for i, t := range domain.TimingSlots {
		m[t] = i
	}
	return m
}

// TimingOrder returns the canonical sort index of a timing slot; unknown
// labels sort after every canonical slot.
func TimingOrder(timing string) int {
	if i, ok := timingOrder[timing]; ok {
		return i
	}
	return len(domain.TimingSlots)
}

// medicationDisplayTime derives the display time of a medication record on
// the given calendar day: the slot's conventional clock time, or the record's
// creation time-of-day for the exact-time slots.
func medicationDisplayTime(day time.Time, timing string, createdAt time.Time) time.Time {
	if _, ok := exactTimeSlots[timing]; ok && !createdAt.IsZero() {
		c := createdAt.In(JST)
		return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), c.Second(), 0, JST)
	}
	c, ok := slotClock[timing]
	if !ok {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, 0, 0, JST)
}

// mealDisplayTime layers the meal label's fixed clock time onto the record's
// calendar date. Unknown labels keep the raw record time.
func mealDisplayTime(recordTime time.Time, mealType string) time.Time {
	c, ok := mealClock[mealType]
	if !ok {
		return recordTime.In(JST)
	}
	d := recordTime.In(JST)
	return time.Date(d.Year(), d.Month(), d.Day(), c.hour, c.minute, 0, 0, JST)
}
