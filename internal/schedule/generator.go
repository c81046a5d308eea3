package schedule

// GenerateOptions tunes the recurring grid.
type GenerateOptions struct {
	// ClosingHour is the end hour of the last slot of each day.
	ClosingHour int
	// Exceptions marks cells that start out unavailable, keyed to the reason
	// shown for them. Used for seed data.
	Exceptions map[SlotKey]string
}

// DefaultHours returns the hourly start times from open (inclusive) to
// close (exclusive).
func DefaultHours(open, close int) []int {
	var hours []int
	for h := open; h < close; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Generate builds the recurring slot grid for every day in window, every
// court and every hour. Ids are derived from (date, court, hour) so that
// regenerating for the same inputs yields the same ids.
func Generate(courts []Court, window DateRange, hours []int, opts GenerateOptions) []TimeSlot {
	closing := opts.ClosingHour
	if closing == 0 && len(hours) > 0 {
		closing = hours[len(hours)-1] + 1
	}

	slots := make([]TimeSlot, 0, window.Days*len(courts)*len(hours))
	for _, date := range window.Dates() {
		for _, court := range courts {
			for i, hour := range hours {
				end := closing
				if i+1 < len(hours) {
					end = hours[i+1]
				}
				slot := TimeSlot{
					ID:        SlotID(date, court.ID, hour),
					CourtID:   court.ID,
					Date:      date,
					StartTime: FormatHour(hour),
					EndTime:   FormatHour(end),
					Available: true,
					Kind:      SlotKindRegular,
				}
				if reason, blocked := opts.Exceptions[SlotKey{CourtID: court.ID, Date: date, Hour: hour}]; blocked {
					slot.Available = false
					slot.Reason = reason
				}
				slots = append(slots, slot)
			}
		}
	}
	return slots
}
