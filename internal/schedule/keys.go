package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	UnknownCourt = "Unknown Court"
	UnknownCoach = "Unknown Coach"

	clinicSlotPrefix = "clinic-"
)

// SlotKey identifies one calendar cell.
type SlotKey struct {
	CourtID string
	Date    string
	Hour    int
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%s/%02d", k.CourtID, k.Date, k.Hour)
}

// ParseHour extracts the integer hour from an "H:mm", "HH:mm" or bare "H"
// time string. The hour must be plain digits; signs are rejected.
func ParseHour(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if s == "" || len(s) > 2 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// FormatHour renders an hour as zero-padded "HH:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// KeyOf derives the cell key of a slot. ok is false when the start time
// cannot be parsed.
func KeyOf(slot TimeSlot) (SlotKey, bool) {
	h, ok := ParseHour(slot.StartTime)
	if !ok {
		return SlotKey{}, false
	}
	return SlotKey{CourtID: slot.CourtID, Date: slot.Date, Hour: h}, true
}

// SlotID is the deterministic id of a generated slot.
func SlotID(date, courtID string, hour int) string {
	return fmt.Sprintf("slot-%s-%s-%02d", date, courtID, hour)
}

// ClinicSlotID is the id of the slot projected from a clinic.
func ClinicSlotID(clinicID string) string {
	return clinicSlotPrefix + clinicID
}

// CourtName looks up a court's display name, degrading to UnknownCourt.
func CourtName(courts []Court, id string) string {
	for _, c := range courts {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCourt
}

// CoachName looks up a coach's name, degrading to UnknownCoach.
func CoachName(coaches []Coach, id string) string {
	for _, c := range coaches {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCoach
}
