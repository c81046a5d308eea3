package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	ReservationsCreated   prometheus.Counter
	ReservationsCancelled prometheus.Counter
	ClinicEnrollments     prometheus.Counter
	SlotCollisions        prometheus.Counter
	IndexBuildDuration    prometheus.Histogram
	PersistFailures       prometheus.Counter
	NotifSent             prometheus.Counter
	NotifFailed           prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}

// Counter keys kept by the MetricsStore.
const (
	KeyReservationsCreated   = "reservations_created"
	KeyReservationsCancelled = "reservations_cancelled"
	KeyClinicEnrollments     = "clinic_enrollments"
	KeySlotsBlocked          = "slots_blocked"
)
