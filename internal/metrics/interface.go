package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncReservationsCreated()
	IncReservationsCancelled()
	IncClinicEnrollments()
	IncSlotCollisions(n int)
	ObserveIndexBuildDuration(seconds float64)
	IncPersistFailures()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps durable counters that survive restarts, shown on the
// admin dashboard.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
