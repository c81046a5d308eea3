package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ReservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_reservations_created_total",
			Help: "The total number of court reservations created.",
		}),
		ReservationsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_reservations_cancelled_total",
			Help: "The total number of court reservations cancelled.",
		}),
		ClinicEnrollments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_clinic_enrollments_total",
			Help: "The total number of participants enrolled into clinics.",
		}),
		SlotCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_slot_collisions_total",
			Help: "Slots dropped because another slot already claimed the same court, date and hour.",
		}),
		IndexBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pickleball_availability_index_build_seconds",
			Help:    "The time taken to index a slot and reservation snapshot.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_persist_failures_total",
			Help: "Bucket writes that failed after all retries.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickleball_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pickleball_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ReservationsCreated,
		s.ReservationsCancelled,
		s.ClinicEnrollments,
		s.SlotCollisions,
		s.IndexBuildDuration,
		s.PersistFailures,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncReservationsCreated() {
	s.ReservationsCreated.Inc()
}

func (s *Service) IncReservationsCancelled() {
	s.ReservationsCancelled.Inc()
}

func (s *Service) IncClinicEnrollments() {
	s.ClinicEnrollments.Inc()
}

func (s *Service) IncSlotCollisions(n int) {
	s.SlotCollisions.Add(float64(n))
}

func (s *Service) ObserveIndexBuildDuration(seconds float64) {
	s.IndexBuildDuration.Observe(seconds)
}

func (s *Service) IncPersistFailures() {
	s.PersistFailures.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
