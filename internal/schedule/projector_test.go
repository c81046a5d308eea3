package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectClinics(t *testing.T) {
	coaches := []Coach{{ID: "coach1", Name: "Alex Rivera"}}
	clinics := []Clinic{
		{ID: "tpl", CoachID: "coach1", Title: "Template", Status: ClinicTemplate},
		{
			ID: "c1", CoachID: "coach1", Title: "Third Shot Drops", Description: "Drills",
			Date: "2025-04-26", StartTime: "10:00", EndTime: "11:00", CourtID: "court2",
			MaxParticipants: 8, Enrolled: 1, Participants: []Participant{{ID: "p1", Name: "Jo"}},
			SkillLevel: "intermediate", Price: 25, Status: ClinicScheduled,
		},
		{ID: "c2", CoachID: "ghost", Date: "2025-04-27", StartTime: "9:00", EndTime: "10:00", CourtID: "court1", Status: ClinicScheduled},
		{ID: "c3", CoachID: "coach1", Date: "2025-04-27", StartTime: "9:00", CourtID: "court1", Status: ClinicCancelled},
	}

	slots := ProjectClinics(clinics, coaches)
	require.Len(t, slots, 2, "only scheduled clinics are projected")

	s := slots[0]
	assert.Equal(t, "clinic-c1", s.ID)
	assert.Equal(t, "court2", s.CourtID)
	assert.False(t, s.Available)
	assert.Equal(t, SlotKindClinic, s.Kind)
	require.NotNil(t, s.Clinic)
	assert.Equal(t, "Alex Rivera", s.Clinic.CoachName)
	assert.Equal(t, "Third Shot Drops", s.Clinic.Title)
	assert.Equal(t, 8, s.Clinic.MaxParticipants)
	assert.Equal(t, 1, s.Clinic.Enrolled)
	assert.Equal(t, 25.0, s.Clinic.Price)
	assert.Len(t, s.Clinic.Participants, 1)

	assert.Equal(t, "Unknown Coach", slots[1].Clinic.CoachName)
}

func TestProjectClinics_SnapshotIsDetached(t *testing.T) {
	clinics := []Clinic{{ID: "c1", Status: ClinicScheduled, Participants: []Participant{{ID: "p1"}}}}
	slots := ProjectClinics(clinics, nil)

	clinics[0].Participants[0].Name = "changed"
	assert.Empty(t, slots[0].Clinic.Participants[0].Name)
}

func TestReplaceClinicSlots_Freshness(t *testing.T) {
	clinic := Clinic{ID: "c1", CourtID: "court1", Date: "2025-04-26", StartTime: "10:00", EndTime: "11:00", MaxParticipants: 4, Status: ClinicScheduled}
	base := []TimeSlot{regularSlot("g", "court1", "2025-04-26", "09:00", true)}

	slots := ReplaceClinicSlots(base, ProjectClinics([]Clinic{clinic}, nil))
	require.Len(t, slots, 2)

	clinic.Enrolled++
	clinic.Participants = append(clinic.Participants, Participant{ID: "p1", Name: "Jo"})
	slots = ReplaceClinicSlots(slots, ProjectClinics([]Clinic{clinic}, nil))
	require.Len(t, slots, 2, "re-projection replaces, never appends")

	status := Resolve("court1", "2025-04-26", 10, slots, nil)
	require.NotNil(t, status.Slot)
	assert.Equal(t, 1, status.Slot.Clinic.Enrolled)
	assert.Len(t, status.Slot.Clinic.Participants, 1)
}

func TestMergeSpecial(t *testing.T) {
	generated := []TimeSlot{
		regularSlot("g9", "court1", "2025-04-25", "09:00", true),
		regularSlot("g10", "court1", "2025-04-25", "10:00", true),
	}
	special := []TimeSlot{regularSlot("s9", "court1", "2025-04-25", "9:00", false)}

	merged := MergeSpecial(generated, special)
	ids := make([]string, 0, len(merged))
	for _, s := range merged {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"g10", "s9"}, ids)
}

func TestCoveredHours(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []int
	}{
		{"single hour", "10:00", "11:00", []int{10}},
		{"two hours", "10:00", "12:00", []int{10, 11}},
		{"partial end hour", "10:00", "11:30", []int{10, 11}},
		{"missing end", "10:00", "", []int{10}},
		{"end before start", "10:00", "09:00", []int{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coveredHours(TimeSlot{StartTime: tt.start, EndTime: tt.end})
			assert.Equal(t, tt.want, got)
		})
	}
}
