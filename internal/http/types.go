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

type Server struct {
	Store          club.ClubStore
	Booking        *booking.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	// Importer is nil when no Playtomic tenant is configured.
	Importer   *playtomic.Importer
	Dispatcher *notifier.Dispatcher
	// InngestClient is nil when Inngest is not configured.
	InngestClient inngest.InngestClient
	// DailyTasks run in order on POST /refresh.
	DailyTasks []inngest.Task
	Router     *http.ServeMux

	now func() time.Time
}

type errorResponse struct {
	Error string `json:"error"`
}

type regenerateResponse struct {
	Today string `json:"today"`
	Slots int    `json:"slots"`
}
