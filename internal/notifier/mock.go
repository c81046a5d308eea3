package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendReservationConfirmationFunc func(notice ReservationNotice, dryRun bool) error
	SendEnrollmentConfirmationFunc  func(notice EnrollmentNotice, dryRun bool) error

	// Call records
	SendReservationConfirmationCalls []ReservationNotice
	SendReservationCancelledCalls    []ReservationNotice
	SendEnrollmentConfirmationCalls  []EnrollmentNotice
	SendDailyAgendaCalls             []struct {
		Date    string
		Entries []AgendaEntry
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReservationConfirmationCalls = nil
	m.SendReservationCancelledCalls = nil
	m.SendEnrollmentConfirmationCalls = nil
	m.SendDailyAgendaCalls = nil
}

func (m *Mock) SendReservationConfirmation(notice ReservationNotice, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReservationConfirmationCalls = append(m.SendReservationConfirmationCalls, notice)
	if m.SendReservationConfirmationFunc != nil {
		return m.SendReservationConfirmationFunc(notice, dryRun)
	}
	return nil
}

func (m *Mock) SendReservationCancelled(notice ReservationNotice, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReservationCancelledCalls = append(m.SendReservationCancelledCalls, notice)
	return nil
}

func (m *Mock) SendEnrollmentConfirmation(notice EnrollmentNotice, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendEnrollmentConfirmationCalls = append(m.SendEnrollmentConfirmationCalls, notice)
	if m.SendEnrollmentConfirmationFunc != nil {
		return m.SendEnrollmentConfirmationFunc(notice, dryRun)
	}
	return nil
}

func (m *Mock) SendDailyAgenda(date string, entries []AgendaEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDailyAgendaCalls = append(m.SendDailyAgendaCalls, struct {
		Date    string
		Entries []AgendaEntry
	}{date, entries})
	return nil
}
