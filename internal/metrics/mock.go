package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	reservationsCreated   int
	reservationsCancelled int
	clinicEnrollments     int
	slotCollisions        int
	indexBuildDurations   []float64
	persistFailures       int
	notifSent             int
	notifFailed           int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		indexBuildDurations: make([]float64, 0),
	}
}

func (m *Mock) IncReservationsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservationsCreated++
}

func (m *Mock) IncReservationsCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservationsCancelled++
}

func (m *Mock) IncClinicEnrollments() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clinicEnrollments++
}

func (m *Mock) IncSlotCollisions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotCollisions += n
}

func (m *Mock) ObserveIndexBuildDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexBuildDurations = append(m.indexBuildDurations, seconds)
}

func (m *Mock) IncPersistFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistFailures++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ReservationsCreated returns the number of times IncReservationsCreated was called.
func (m *Mock) ReservationsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reservationsCreated
}

// ReservationsCancelled returns the number of times IncReservationsCancelled was called.
func (m *Mock) ReservationsCancelled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reservationsCancelled
}

// ClinicEnrollments returns the number of times IncClinicEnrollments was called.
func (m *Mock) ClinicEnrollments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clinicEnrollments
}

// SlotCollisions returns the accumulated collision count.
func (m *Mock) SlotCollisions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slotCollisions
}

// IndexBuilds returns how many index builds were observed.
func (m *Mock) IndexBuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.indexBuildDurations)
}

// PersistFailures returns the number of times IncPersistFailures was called.
func (m *Mock) PersistFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistFailures
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// CounterStoreMock is an in-memory MetricsStore for tests.
type CounterStoreMock struct {
	mu     sync.Mutex
	values map[string]int
}

// NewCounterStoreMock creates an empty CounterStoreMock.
func NewCounterStoreMock() *CounterStoreMock {
	return &CounterStoreMock{values: make(map[string]int)}
}

func (m *CounterStoreMock) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *CounterStoreMock) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}
