package club

import (
	"context"
	"sync"
	"time"

	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use. Unset funcs return zero values.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	SnapshotFunc                func() Snapshot
	IndexFunc                   func() *schedule.Index
	CourtsFunc                  func() []schedule.Court
	UpsertCourtFunc             func(court schedule.Court) error
	DeleteCourtFunc             func(id string) error
	UpsertSpecialSlotFunc       func(slot schedule.TimeSlot) error
	DeleteSpecialSlotFunc       func(id string) error
	ReservationsFunc            func() []schedule.Reservation
	ReserveFunc                 func(r schedule.Reservation) (schedule.Reservation, error)
	UpdateReservationStatusFunc func(id string, status schedule.ReservationStatus) (schedule.Reservation, error)
	ClinicFunc                  func(id string) (schedule.Clinic, error)
	UpsertClinicFunc            func(clinic schedule.Clinic) error
	SetClinicStatusFunc         func(id string, status schedule.ClinicStatus) (schedule.Clinic, error)
	EnrollParticipantFunc       func(clinicID string, p schedule.Participant) (schedule.Clinic, error)

	// Call records
	ReserveCalls                 []schedule.Reservation
	UpsertSpecialSlotCalls       []schedule.TimeSlot
	DeleteSpecialSlotCalls       []string
	UpdateReservationStatusCalls []struct {
		ID     string
		Status schedule.ReservationStatus
	}
	UpsertClinicCalls      []schedule.Clinic
	EnrollParticipantCalls []struct {
		ClinicID    string
		Participant schedule.Participant
	}
	RegenerateSlotsCalls []time.Time
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Load(ctx context.Context) error  { return nil }
func (m *MockStore) Close(ctx context.Context) error { return nil }

func (m *MockStore) Snapshot() Snapshot {
	var snap Snapshot
	if m.SnapshotFunc != nil {
		snap = m.SnapshotFunc()
	}
	if snap.Index == nil {
		snap.Index = m.Index()
	}
	return snap
}

func (m *MockStore) Index() *schedule.Index {
	if m.IndexFunc != nil {
		return m.IndexFunc()
	}
	ix, _ := schedule.BuildIndex(nil, nil)
	return ix
}

func (m *MockStore) Subscribe(fn func(Event)) func() { return func() {} }

func (m *MockStore) Courts() []schedule.Court {
	if m.CourtsFunc != nil {
		return m.CourtsFunc()
	}
	return nil
}

func (m *MockStore) UpsertCourt(court schedule.Court) error {
	if m.UpsertCourtFunc != nil {
		return m.UpsertCourtFunc(court)
	}
	return nil
}

func (m *MockStore) DeleteCourt(id string) error {
	if m.DeleteCourtFunc != nil {
		return m.DeleteCourtFunc(id)
	}
	return nil
}

func (m *MockStore) RegenerateSlots(today time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegenerateSlotsCalls = append(m.RegenerateSlotsCalls, today)
}

func (m *MockStore) SpecialSlots() []schedule.TimeSlot { return nil }

func (m *MockStore) UpsertSpecialSlot(slot schedule.TimeSlot) error {
	m.mu.Lock()
	m.UpsertSpecialSlotCalls = append(m.UpsertSpecialSlotCalls, slot)
	m.mu.Unlock()
	if m.UpsertSpecialSlotFunc != nil {
		return m.UpsertSpecialSlotFunc(slot)
	}
	return nil
}

func (m *MockStore) DeleteSpecialSlot(id string) error {
	m.mu.Lock()
	m.DeleteSpecialSlotCalls = append(m.DeleteSpecialSlotCalls, id)
	m.mu.Unlock()
	if m.DeleteSpecialSlotFunc != nil {
		return m.DeleteSpecialSlotFunc(id)
	}
	return nil
}

func (m *MockStore) Reservations() []schedule.Reservation {
	if m.ReservationsFunc != nil {
		return m.ReservationsFunc()
	}
	return nil
}

func (m *MockStore) Reserve(r schedule.Reservation) (schedule.Reservation, error) {
	m.mu.Lock()
	m.ReserveCalls = append(m.ReserveCalls, r)
	m.mu.Unlock()
	if m.ReserveFunc != nil {
		return m.ReserveFunc(r)
	}
	return r, nil
}

func (m *MockStore) UpdateReservationStatus(id string, status schedule.ReservationStatus) (schedule.Reservation, error) {
	m.mu.Lock()
	m.UpdateReservationStatusCalls = append(m.UpdateReservationStatusCalls, struct {
		ID     string
		Status schedule.ReservationStatus
	}{id, status})
	m.mu.Unlock()
	if m.UpdateReservationStatusFunc != nil {
		return m.UpdateReservationStatusFunc(id, status)
	}
	return schedule.Reservation{ID: id, Status: status}, nil
}

func (m *MockStore) Coaches() []schedule.Coach { return nil }

func (m *MockStore) UpsertCoach(coach schedule.Coach) error { return nil }

func (m *MockStore) Clinics() []schedule.Clinic { return nil }

func (m *MockStore) Clinic(id string) (schedule.Clinic, error) {
	if m.ClinicFunc != nil {
		return m.ClinicFunc(id)
	}
	return schedule.Clinic{}, ErrClinicNotFound
}

func (m *MockStore) UpsertClinic(clinic schedule.Clinic) error {
	m.mu.Lock()
	m.UpsertClinicCalls = append(m.UpsertClinicCalls, clinic)
	m.mu.Unlock()
	if m.UpsertClinicFunc != nil {
		return m.UpsertClinicFunc(clinic)
	}
	return nil
}

func (m *MockStore) SetClinicStatus(id string, status schedule.ClinicStatus) (schedule.Clinic, error) {
	if m.SetClinicStatusFunc != nil {
		return m.SetClinicStatusFunc(id, status)
	}
	return schedule.Clinic{ID: id, Status: status}, nil
}

func (m *MockStore) EnrollParticipant(clinicID string, p schedule.Participant) (schedule.Clinic, error) {
	m.mu.Lock()
	m.EnrollParticipantCalls = append(m.EnrollParticipantCalls, struct {
		ClinicID    string
		Participant schedule.Participant
	}{clinicID, p})
	m.mu.Unlock()
	if m.EnrollParticipantFunc != nil {
		return m.EnrollParticipantFunc(clinicID, p)
	}
	return schedule.Clinic{ID: clinicID}, nil
}
