package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/mauv0809/pickleball-courts/internal/config"
	"github.com/mauv0809/pickleball-courts/internal/inngest"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/playtomic"
)

func NewServer(store club.ClubStore, bookingSvc *booking.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, importer *playtomic.Importer, dispatcher *notifier.Dispatcher, inngestClient inngest.InngestClient, dailyTasks ...inngest.Task) *Server {
	server := &Server{
		Store:          store,
		Booking:        bookingSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Importer:       importer,
		Dispatcher:     dispatcher,
		InngestClient:  inngestClient,
		DailyTasks:     dailyTasks,
		Router:         http.NewServeMux(),
		now:            time.Now,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /courts", Chain(s.ListCourtsHandler(), paramsMiddleware))
	s.Router.Handle("POST /courts", Chain(s.UpsertCourtHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /courts/{id}", Chain(s.DeleteCourtHandler(), paramsMiddleware))

	s.Router.Handle("GET /availability/day", Chain(s.DayAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("GET /availability/week", Chain(s.WeekAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("GET /availability/cell", Chain(s.CellAvailabilityHandler(), paramsMiddleware))

	s.Router.Handle("GET /reservations", Chain(s.ListReservationsHandler(), paramsMiddleware))
	s.Router.Handle("POST /reservations", Chain(s.BookHandler(), paramsMiddleware))
	s.Router.Handle("POST /reservations/{id}/cancel", Chain(s.CancelReservationHandler(), paramsMiddleware))
	s.Router.Handle("POST /reservations/{id}/complete", Chain(s.CompleteReservationHandler(), paramsMiddleware))

	s.Router.Handle("POST /slots/special", Chain(s.BlockSlotHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /slots/special/{id}", Chain(s.UnblockSlotHandler(), paramsMiddleware))

	s.Router.Handle("GET /coaches", Chain(s.ListCoachesHandler(), paramsMiddleware))
	s.Router.Handle("POST /coaches", Chain(s.CreateCoachHandler(), paramsMiddleware))

	s.Router.Handle("GET /clinics", Chain(s.ListClinicsHandler(), paramsMiddleware))
	s.Router.Handle("POST /clinics", Chain(s.CreateClinicHandler(), paramsMiddleware))
	s.Router.Handle("POST /clinics/{id}/schedule", Chain(s.ScheduleClinicHandler(), paramsMiddleware))
	s.Router.Handle("POST /clinics/{id}/enroll", Chain(s.EnrollHandler(), paramsMiddleware))
	s.Router.Handle("POST /clinics/{id}/cancel", Chain(s.CancelClinicHandler(), paramsMiddleware))

	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("POST /regenerate", Chain(s.RegenerateHandler(), paramsMiddleware))
	s.Router.Handle("POST /sync/playtomic", Chain(s.SyncPlaytomicHandler(), paramsMiddleware))
	s.Router.Handle("POST /refresh", Chain(s.RefreshHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/notify", Chain(s.PubSubPushHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/courts", Chain(s.CourtsCommandHandler(), paramsMiddleware, slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)))

	if s.InngestClient != nil {
		s.Router.Handle("/api/inngest", s.InngestClient.Serve())
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
