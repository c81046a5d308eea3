package club

import (
	"time"

	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// SeededBookingReason marks cells that start out taken in a fresh install.
const SeededBookingReason = "Booked"

// DefaultSeed returns the courts, coaches and clinics a new club starts with.
func DefaultSeed(today time.Time) Seed {
	date := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(schedule.DateLayout)
	}

	return Seed{
		Courts: []schedule.Court{
			{ID: "1", Name: "Center Court", Location: "Main Hall", Indoor: true, Orientation: schedule.OrientationHorizontal, Placement: "top"},
			{ID: "2", Name: "North Court", Location: "Main Hall", Indoor: true, Orientation: schedule.OrientationHorizontal, Placement: "bottom"},
			{ID: "3", Name: "Garden Court", Location: "Outdoor Area", Indoor: false, Orientation: schedule.OrientationVertical, VerticalAlignment: "left"},
			{ID: "4", Name: "Sunset Court", Location: "Outdoor Area", Indoor: false, Orientation: schedule.OrientationVertical, VerticalAlignment: "right"},
		},
		Coaches: []schedule.Coach{
			{ID: "coach-1", Name: "Maria Lopez", Email: "maria@example.com", Specialties: []string{"beginners", "dinking"}, Rating: 4.9, Status: "active"},
			{ID: "coach-2", Name: "Tom Becker", Email: "tom@example.com", Specialties: []string{"serve", "strategy"}, Rating: 4.7, Status: "active"},
		},
		Clinics: []schedule.Clinic{
			{
				ID:              "clinic-template-basics",
				CoachID:         "coach-1",
				Title:           "Pickleball Basics",
				Description:     "Rules, grip and the kitchen line.",
				MaxParticipants: 8,
				SkillLevel:      "beginner",
				Price:           25,
				Status:          schedule.ClinicTemplate,
			},
			{
				ID:              "clinic-serve-lab",
				CoachID:         "coach-2",
				Title:           "Serve Lab",
				Description:     "Deep serves and third shot drops.",
				Date:            date(1),
				StartTime:       "10:00",
				EndTime:         "12:00",
				CourtID:         "2",
				MaxParticipants: 6,
				SkillLevel:      "intermediate",
				Price:           40,
				Status:          schedule.ClinicScheduled,
			},
		},
	}
}

// DefaultExceptions returns generated cells that start out unavailable.
func DefaultExceptions(today time.Time) map[schedule.SlotKey]string {
	date := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(schedule.DateLayout)
	}
	return map[schedule.SlotKey]string{
		{CourtID: "1", Date: date(0), Hour: 10}: SeededBookingReason,
		{CourtID: "1", Date: date(0), Hour: 14}: SeededBookingReason,
		{CourtID: "3", Date: date(1), Hour: 9}:  "Maintenance",
		{CourtID: "4", Date: date(2), Hour: 16}: SeededBookingReason,
	}
}
