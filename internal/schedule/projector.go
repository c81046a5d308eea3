package schedule

import (
	"strconv"
	"strings"
)

// ProjectClinics turns every scheduled clinic into a calendar slot carrying
// a snapshot of the clinic. Templates and cancelled clinics are skipped.
func ProjectClinics(clinics []Clinic, coaches []Coach) []TimeSlot {
	var slots []TimeSlot
	for _, c := range clinics {
		if c.Status != ClinicScheduled {
			continue
		}
		participants := make([]Participant, len(c.Participants))
		copy(participants, c.Participants)

		slots = append(slots, TimeSlot{
			ID:        ClinicSlotID(c.ID),
			CourtID:   c.CourtID,
			Date:      c.Date,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Available: false,
			Kind:      SlotKindClinic,
			Clinic: &ClinicDetails{
				ClinicID:        c.ID,
				CoachID:         c.CoachID,
				CoachName:       CoachName(coaches, c.CoachID),
				Title:           c.Title,
				Description:     c.Description,
				Price:           c.Price,
				SkillLevel:      c.SkillLevel,
				MaxParticipants: c.MaxParticipants,
				Enrolled:        c.Enrolled,
				Participants:    participants,
			},
		})
	}
	return slots
}

// ReplaceClinicSlots drops every clinic slot from slots and appends the
// fresh projection. Clinic slots are never merged additively.
func ReplaceClinicSlots(slots []TimeSlot, projected []TimeSlot) []TimeSlot {
	merged := make([]TimeSlot, 0, len(slots)+len(projected))
	for _, s := range slots {
		if s.Kind == SlotKindClinic {
			continue
		}
		merged = append(merged, s)
	}
	return append(merged, projected...)
}

// MergeSpecial combines the generated grid with manually curated slots. A
// generated slot whose cell is covered by a special slot is removed, so at
// most one regular candidate per cell survives.
func MergeSpecial(generated, special []TimeSlot) []TimeSlot {
	overridden := make(map[SlotKey]struct{}, len(special))
	for _, s := range special {
		if k, ok := KeyOf(s); ok {
			overridden[k] = struct{}{}
		}
	}

	merged := make([]TimeSlot, 0, len(generated)+len(special))
	for _, g := range generated {
		if k, ok := KeyOf(g); ok {
			if _, hit := overridden[k]; hit {
				continue
			}
		}
		merged = append(merged, g)
	}
	return append(merged, special...)
}

// coveredHours lists the hours a slot occupies: every hour from its start up
// to, but excluding, its end. A slot with no usable end occupies its start
// hour only.
func coveredHours(slot TimeSlot) []int {
	start, ok := ParseHour(slot.StartTime)
	if !ok {
		return nil
	}
	end, ok := ParseHour(slot.EndTime)
	if !ok {
		return []int{start}
	}
	if i := strings.IndexByte(slot.EndTime, ':'); i >= 0 {
		if m, err := strconv.Atoi(strings.TrimSpace(slot.EndTime[i+1:])); err == nil && m > 0 {
			end++
		}
	}
	if end <= start {
		return []int{start}
	}
	hours := make([]int, 0, end-start)
	for h := start; h < end; h++ {
		hours = append(hours, h)
	}
	return hours
}
