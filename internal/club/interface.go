package club

import (
	"context"
	"time"

	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// ClubStore is the entity store for courts, slots, reservations, coaches and
// clinics. Every mutation re-derives the merged slot collection before any
// reader can observe it, then notifies subscribers.
type ClubStore interface {
	// Load replaces in-memory state with the persisted buckets, falling back
	// to the seed for buckets that were never written.
	Load(ctx context.Context) error
	// Close flushes pending persistence writes.
	Close(ctx context.Context) error

	Snapshot() Snapshot
	// Index returns the availability index of the current snapshot. It is
	// built at most once per version.
	Index() *schedule.Index
	Subscribe(fn func(Event)) (unsubscribe func())

	Courts() []schedule.Court
	UpsertCourt(court schedule.Court) error
	DeleteCourt(id string) error

	RegenerateSlots(today time.Time)
	SpecialSlots() []schedule.TimeSlot
	UpsertSpecialSlot(slot schedule.TimeSlot) error
	DeleteSpecialSlot(id string) error

	Reservations() []schedule.Reservation
	Reserve(reservation schedule.Reservation) (schedule.Reservation, error)
	UpdateReservationStatus(id string, status schedule.ReservationStatus) (schedule.Reservation, error)

	Coaches() []schedule.Coach
	UpsertCoach(coach schedule.Coach) error

	Clinics() []schedule.Clinic
	Clinic(id string) (schedule.Clinic, error)
	UpsertClinic(clinic schedule.Clinic) error
	SetClinicStatus(id string, status schedule.ClinicStatus) (schedule.Clinic, error)
	EnrollParticipant(clinicID string, participant schedule.Participant) (schedule.Clinic, error)
}
