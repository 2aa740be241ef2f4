package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, JST)
}

func TestShiftCategory_Boundaries(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{8, 30, ShiftNight},    // last night minute of the morning
		{8, 31, ShiftDaytime},  // first daytime minute
		{17, 30, ShiftDaytime}, // last daytime minute
		{17, 31, ShiftNight},   // first night minute of the evening
		{0, 0, ShiftNight},
		{12, 0, ShiftDaytime},
		{23, 59, ShiftNight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShiftCategory(at(tt.hour, tt.minute)),
			"%02d:%02d", tt.hour, tt.minute)
	}
}

func TestShiftCategory_SecondsIgnored(t *testing.T) {
	ts := time.Date(2025, 3, 10, 8, 30, 59, 0, JST)
	assert.Equal(t, ShiftNight, ShiftCategory(ts))
}
