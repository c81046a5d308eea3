package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHour(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:00", 9, true},
		{"9:00", 9, true},
		{"9", 9, true},
		{" 17:30 ", 17, true},
		{"00:00", 0, true},
		{"24:00", 0, false},
		{"", 0, false},
		{"noon", 0, false},
		{"+9", 0, false},
		{"+9:00", 0, false},
		{"-1", 0, false},
		{"-0", 0, false},
		{"009", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHour(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyOf(t *testing.T) {
	a, ok := KeyOf(TimeSlot{CourtID: "court1", Date: "2025-04-26", StartTime: "9:00"})
	assert.True(t, ok)
	b, _ := KeyOf(TimeSlot{CourtID: "court1", Date: "2025-04-26", StartTime: "09:00"})
	assert.Equal(t, a, b)
	assert.Equal(t, "court1/2025-04-26/09", a.String())

	_, ok = KeyOf(TimeSlot{StartTime: "bogus"})
	assert.False(t, ok)
}

func TestLookupFallbacks(t *testing.T) {
	courts := []Court{{ID: "court1", Name: "Center Court"}}
	assert.Equal(t, "Center Court", CourtName(courts, "court1"))
	assert.Equal(t, "Unknown Court", CourtName(courts, "deleted"))
	assert.Equal(t, "Unknown Coach", CoachName(nil, "x"))
}
