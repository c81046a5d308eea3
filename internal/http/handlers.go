package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/mauv0809/pickleball-courts/internal/inngest"
	"github.com/mauv0809/pickleball-courts/internal/notifier/slack"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
	slackapi "github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListCourtsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Store.Courts())
	}
}

func (s *Server) UpsertCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var court schedule.Court
		if err := decodeBody(r, &court); err != nil {
			writeError(w, err)
			return
		}
		if strings.TrimSpace(court.Name) == "" {
			writeError(w, fmt.Errorf("%w: court name is required", booking.ErrInvalidRequest))
			return
		}
		status := http.StatusCreated
		if court.ID == "" {
			court.ID = uuid.NewString()
		} else {
			for _, existing := range s.Store.Courts() {
				if existing.ID == court.ID {
					status = http.StatusOK
					break
				}
			}
		}
		if err := s.Store.UpsertCourt(court); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, status, court)
	}
}

func (s *Server) DeleteCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeleteCourt(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DayAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = s.today()
		}
		view, err := s.Booking.DayView(date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) WeekAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start := q.Get("start")
		if start == "" {
			start = s.today()
		}
		view, err := s.Booking.WeekView(q.Get("court"), start)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) CellAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		status, err := s.Booking.Cell(q.Get("court"), q.Get("date"), q.Get("hour"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func (s *Server) ListReservationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservations := s.Store.Reservations()
		if status := r.URL.Query().Get("status"); status != "" {
			filtered := reservations[:0]
			for _, res := range reservations {
				if string(res.Status) == status {
					filtered = append(filtered, res)
				}
			}
			reservations = filtered
		}
		writeJSON(w, http.StatusOK, reservations)
	}
}

func (s *Server) BookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.BookRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		reservation, err := s.Booking.Book(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, reservation)
	}
}

func (s *Server) CancelReservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservation, err := s.Booking.Cancel(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reservation)
	}
}

func (s *Server) CompleteReservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservation, err := s.Booking.Complete(r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reservation)
	}
}

func (s *Server) BlockSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.BlockRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		slot, err := s.Booking.BlockSlot(req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, slot)
	}
}

func (s *Server) UnblockSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Booking.UnblockSlot(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListCoachesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Store.Coaches())
	}
}

func (s *Server) CreateCoachHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var coach schedule.Coach
		if err := decodeBody(r, &coach); err != nil {
			writeError(w, err)
			return
		}
		created, err := s.Booking.CreateCoach(coach)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) ListClinicsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinics := s.Store.Clinics()
		if status := r.URL.Query().Get("status"); status != "" {
			filtered := clinics[:0]
			for _, c := range clinics {
				if string(c.Status) == status {
					filtered = append(filtered, c)
				}
			}
			clinics = filtered
		}
		writeJSON(w, http.StatusOK, clinics)
	}
}

func (s *Server) CreateClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var clinic schedule.Clinic
		if err := decodeBody(r, &clinic); err != nil {
			writeError(w, err)
			return
		}
		created, err := s.Booking.CreateClinic(clinic)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) ScheduleClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.ScheduleRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		clinic, err := s.Booking.ScheduleFromTemplate(r.PathValue("id"), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, clinic)
	}
}

func (s *Server) EnrollHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.EnrollRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		clinic, err := s.Booking.Enroll(r.Context(), r.PathValue("id"), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clinic)
	}
}

func (s *Server) CancelClinicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinic, err := s.Booking.CancelClinic(r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clinic)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Booking.Stats()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) RegenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := s.now().In(s.Cfg.Location())
		s.Store.RegenerateSlots(today)
		snap := s.Store.Snapshot()
		writeJSON(w, http.StatusOK, regenerateResponse{Today: snap.Today, Slots: len(snap.Slots)})
	}
}

func (s *Server) SyncPlaytomicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Importer == nil {
			http.Error(w, "Playtomic sync is not configured", http.StatusServiceUnavailable)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("Dry run: skipping Playtomic sync")
			writeJSON(w, http.StatusOK, map[string]bool{"dryRun": true})
			return
		}
		result, err := s.Importer.Sync(r.Context(), s.now().In(s.Cfg.Location()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// RefreshHandler runs the daily tasks without going through Inngest.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := make([]string, 0, len(s.DailyTasks))
		for _, task := range s.DailyTasks {
			names = append(names, task.Name)
		}
		if isDryRunFromContext(r) {
			writeJSON(w, http.StatusOK, map[string]any{"dryRun": true, "tasks": names})
			return
		}
		if err := inngest.RunAll(r.Context(), s.DailyTasks...); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"completed": names})
	}
}

// PubSubPushHandler receives notification messages pushed by Pub/Sub.
// A non-2xx response makes Pub/Sub redeliver.
func (s *Server) PubSubPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		topic, data, err := pubsub.DecodePush(body)
		if err != nil {
			log.Error("Invalid push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.Dispatcher.Handle(r.Context(), topic, data, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle push message", "topic", topic, "error", err)
			http.Error(w, "failed to handle message", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CourtsCommandHandler answers the /courts slash command with the open
// hours of a date, today when the command has no text.
func (s *Server) CourtsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slackapi.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		date := strings.TrimSpace(cmd.Text)
		if date == "" {
			date = s.today()
		}
		log.Info("Received courts command", "user", cmd.UserName, "date", date)

		view, err := s.Booking.DayView(date)
		if err != nil {
			respondWithSlackMsg(w, slackapi.Msg{ResponseType: "ephemeral", Text: "Please use a date like 2025-03-10."})
			return
		}
		msg := slack.FormatDayAvailability(view)
		msg.ResponseType = "ephemeral"
		respondWithSlackMsg(w, msg.Msg)
	}
}

func (s *Server) today() string {
	return s.now().In(s.Cfg.Location()).Format(schedule.DateLayout)
}
