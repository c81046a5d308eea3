package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	courts := []Court{{ID: "court1", Name: "Court 1"}, {ID: "court2", Name: "Court 2"}}
	window := DateRange{Start: time.Date(2025, 4, 25, 8, 30, 0, 0, time.Local), Days: 7}
	hours := DefaultHours(9, 18)

	slots := Generate(courts, window, hours, GenerateOptions{ClosingHour: 18})
	require.Len(t, slots, 7*2*9)

	first := slots[0]
	assert.Equal(t, "slot-2025-04-25-court1-09", first.ID)
	assert.Equal(t, "2025-04-25", first.Date)
	assert.Equal(t, "09:00", first.StartTime)
	assert.Equal(t, "10:00", first.EndTime)
	assert.True(t, first.Available)
	assert.Equal(t, SlotKindRegular, first.Kind)

	last := slots[8]
	assert.Equal(t, "17:00", last.StartTime)
	assert.Equal(t, "18:00", last.EndTime, "last slot of the day ends at closing")

	assert.Equal(t, "2025-05-01", slots[len(slots)-1].Date)
}

func TestGenerate_Deterministic(t *testing.T) {
	courts := []Court{{ID: "court1"}}
	window := DateRange{Start: time.Date(2025, 4, 25, 0, 0, 0, 0, time.Local), Days: 2}

	a := Generate(courts, window, []int{9, 10}, GenerateOptions{ClosingHour: 11})
	b := Generate(courts, window, []int{9, 10}, GenerateOptions{ClosingHour: 11})
	assert.Equal(t, a, b)

	// Rolling the window forward keeps the ids of overlapping days.
	rolled := Generate(courts, DateRange{Start: window.Start.AddDate(0, 0, 1), Days: 2}, []int{9, 10}, GenerateOptions{ClosingHour: 11})
	assert.Equal(t, a[2].ID, rolled[0].ID)
}

func TestGenerate_Exceptions(t *testing.T) {
	courts := []Court{{ID: "court1"}}
	window := DateRange{Start: time.Date(2025, 4, 25, 0, 0, 0, 0, time.Local), Days: 1}
	opts := GenerateOptions{
		ClosingHour: 12,
		Exceptions: map[SlotKey]string{
			{CourtID: "court1", Date: "2025-04-25", Hour: 10}: "Booked",
		},
	}

	slots := Generate(courts, window, []int{9, 10, 11}, opts)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.Equal(t, "Booked", slots[1].Reason)
	assert.True(t, slots[2].Available)
}

func TestGenerate_DefaultClosing(t *testing.T) {
	slots := Generate([]Court{{ID: "c"}}, DateRange{Start: time.Now(), Days: 1}, []int{9, 10}, GenerateOptions{})
	require.Len(t, slots, 2)
	assert.Equal(t, "11:00", slots[1].EndTime)
}

func TestDateRange_Dates(t *testing.T) {
	r := DateRange{Start: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), Days: 3}
	assert.Equal(t, []string{"2024-12-30", "2024-12-31", "2025-01-01"}, r.Dates())
}
