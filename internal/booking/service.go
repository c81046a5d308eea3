package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// New creates a booking Service.
func New(opts Options) *Service {
	if opts.CloseHour <= opts.OpenHour {
		opts.OpenHour, opts.CloseHour = 9, 18
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:    opts.Store,
		pubsub:   opts.PubSub,
		metrics:  opts.Metrics,
		counters: opts.Counters,
		hours:    schedule.DefaultHours(opts.OpenHour, opts.CloseHour),
		now:      opts.Now,
	}
}

// Book reserves a cell after checking that it resolves as bookable.
func (s *Service) Book(ctx context.Context, req BookRequest) (schedule.Reservation, error) {
	if strings.TrimSpace(req.PlayerName) == "" {
		return schedule.Reservation{}, fmt.Errorf("%w: player name is required", ErrInvalidRequest)
	}

	slotID := req.TimeSlotID
	if slotID == "" {
		key, err := parseKey(req.CourtID, req.Date, req.Hour)
		if err != nil {
			return schedule.Reservation{}, err
		}
		status := s.store.Index().ResolveKey(key)
		if !status.Bookable() {
			return schedule.Reservation{}, fmt.Errorf("%w: %s (%s)", club.ErrSlotUnavailable, key, status.Reason)
		}
		slotID = status.Slot.ID
	}

	players := req.Players
	if players <= 0 {
		players = 1
	}
	reservation, err := s.store.Reserve(schedule.Reservation{
		ID:          uuid.NewString(),
		TimeSlotID:  slotID,
		PlayerName:  strings.TrimSpace(req.PlayerName),
		PlayerEmail: req.PlayerEmail,
		PlayerPhone: req.PlayerPhone,
		Players:     players,
		Status:      schedule.ReservationConfirmed,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return schedule.Reservation{}, err
	}

	s.metrics.IncReservationsCreated()
	s.count(metrics.KeyReservationsCreated)
	s.publish(ctx, pubsub.EventNotifyReservation, s.reservationNotice(reservation))
	return reservation, nil
}

// Cancel frees the cell held by a reservation.
func (s *Service) Cancel(ctx context.Context, reservationID string) (schedule.Reservation, error) {
	reservation, err := s.store.UpdateReservationStatus(reservationID, schedule.ReservationCancelled)
	if err != nil {
		return schedule.Reservation{}, err
	}
	s.metrics.IncReservationsCancelled()
	s.count(metrics.KeyReservationsCancelled)
	s.publish(ctx, pubsub.EventNotifyCancellation, s.reservationNotice(reservation))
	return reservation, nil
}

// Complete marks a reservation as played. The cell stays occupied.
func (s *Service) Complete(reservationID string) (schedule.Reservation, error) {
	return s.store.UpdateReservationStatus(reservationID, schedule.ReservationCompleted)
}

// Enroll adds a participant to a scheduled clinic.
func (s *Service) Enroll(ctx context.Context, clinicID string, req EnrollRequest) (schedule.Clinic, error) {
	if strings.TrimSpace(req.Name) == "" {
		return schedule.Clinic{}, fmt.Errorf("%w: participant name is required", ErrInvalidRequest)
	}
	clinic, err := s.store.EnrollParticipant(clinicID, schedule.Participant{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      req.Phone,
		EnrolledAt: s.now(),
	})
	if err != nil {
		return schedule.Clinic{}, err
	}

	s.metrics.IncClinicEnrollments()
	s.count(metrics.KeyClinicEnrollments)

	snap := s.store.Snapshot()
	s.publish(ctx, pubsub.EventNotifyEnrollment, notifier.EnrollmentNotice{
		ClinicID:        clinic.ID,
		Title:           clinic.Title,
		CoachName:       schedule.CoachName(snap.Coaches, clinic.CoachID),
		CourtName:       schedule.CourtName(snap.Courts, clinic.CourtID),
		Date:            clinic.Date,
		StartTime:       clinic.StartTime,
		EndTime:         clinic.EndTime,
		ParticipantName: clinic.Participants[len(clinic.Participants)-1].Name,
		Enrolled:        clinic.Enrolled,
		MaxParticipants: clinic.MaxParticipants,
	})
	return clinic, nil
}

// BlockSlot overrides one cell with a special slot. The slot is blocked
// unless req.Available is set.
func (s *Service) BlockSlot(req BlockRequest) (schedule.TimeSlot, error) {
	key, err := parseKey(req.CourtID, req.Date, req.Hour)
	if err != nil {
		return schedule.TimeSlot{}, err
	}
	if !hasCourt(s.store.Courts(), key.CourtID) {
		return schedule.TimeSlot{}, fmt.Errorf("%w: %s", club.ErrCourtNotFound, key.CourtID)
	}
	slot := schedule.TimeSlot{
		ID:        "special-" + uuid.NewString(),
		CourtID:   key.CourtID,
		Date:      key.Date,
		StartTime: schedule.FormatHour(key.Hour),
		EndTime:   schedule.FormatHour(key.Hour + 1),
		Available: req.Available,
		Reason:    strings.TrimSpace(req.Reason),
		Kind:      schedule.SlotKindRegular,
	}
	if err := s.store.UpsertSpecialSlot(slot); err != nil {
		return schedule.TimeSlot{}, err
	}
	if !slot.Available {
		s.count(metrics.KeySlotsBlocked)
	}
	log.Info("Special slot saved", "slotID", slot.ID, "key", key.String(), "available", slot.Available)
	return slot, nil
}

// UnblockSlot removes a special slot, restoring the generated cell.
func (s *Service) UnblockSlot(slotID string) error {
	return s.store.DeleteSpecialSlot(slotID)
}

// CreateCoach stores a coach, assigning an id when missing.
func (s *Service) CreateCoach(coach schedule.Coach) (schedule.Coach, error) {
	if strings.TrimSpace(coach.Name) == "" {
		return schedule.Coach{}, fmt.Errorf("%w: coach name is required", ErrInvalidRequest)
	}
	if coach.ID == "" {
		coach.ID = uuid.NewString()
	}
	if coach.Status == "" {
		coach.Status = "active"
	}
	if err := s.store.UpsertCoach(coach); err != nil {
		return schedule.Coach{}, err
	}
	return coach, nil
}

// CreateClinic stores a clinic template or a scheduled clinic.
func (s *Service) CreateClinic(clinic schedule.Clinic) (schedule.Clinic, error) {
	if strings.TrimSpace(clinic.Title) == "" {
		return schedule.Clinic{}, fmt.Errorf("%w: clinic title is required", ErrInvalidRequest)
	}
	if !hasCoach(s.store.Coaches(), clinic.CoachID) {
		return schedule.Clinic{}, fmt.Errorf("%w: %s", club.ErrCoachNotFound, clinic.CoachID)
	}
	if clinic.ID == "" {
		clinic.ID = uuid.NewString()
	} else if _, err := s.store.Clinic(clinic.ID); err == nil {
		return schedule.Clinic{}, fmt.Errorf("%w: %s", ErrClinicExists, clinic.ID)
	}
	if clinic.Status == "" {
		clinic.Status = schedule.ClinicTemplate
	}
	clinic.Enrolled = len(clinic.Participants)
	if clinic.Status == schedule.ClinicScheduled {
		if err := s.checkClinicCells(clinic); err != nil {
			return schedule.Clinic{}, err
		}
	}
	if err := s.store.UpsertClinic(clinic); err != nil {
		return schedule.Clinic{}, err
	}
	return clinic, nil
}

// ScheduleFromTemplate copies a template into a new scheduled clinic.
func (s *Service) ScheduleFromTemplate(templateID string, req ScheduleRequest) (schedule.Clinic, error) {
	template, err := s.store.Clinic(templateID)
	if err != nil {
		return schedule.Clinic{}, err
	}
	if template.Status != schedule.ClinicTemplate {
		return schedule.Clinic{}, fmt.Errorf("%w: %s is %s", ErrNotTemplate, templateID, template.Status)
	}

	clinic := template
	clinic.ID = uuid.NewString()
	clinic.Date = req.Date
	clinic.StartTime = req.StartTime
	clinic.EndTime = req.EndTime
	clinic.CourtID = req.CourtID
	clinic.Enrolled = 0
	clinic.Participants = nil
	clinic.Status = schedule.ClinicScheduled
	if err := s.checkClinicCells(clinic); err != nil {
		return schedule.Clinic{}, err
	}
	if err := s.store.UpsertClinic(clinic); err != nil {
		return schedule.Clinic{}, err
	}
	log.Info("Clinic scheduled from template", "templateID", templateID, "clinicID", clinic.ID, "date", clinic.Date, "court", clinic.CourtID)
	return clinic, nil
}

// CancelClinic removes a clinic from the calendar.
func (s *Service) CancelClinic(clinicID string) (schedule.Clinic, error) {
	return s.store.SetClinicStatus(clinicID, schedule.ClinicCancelled)
}

// checkClinicCells rejects a clinic whose time range is malformed or
// overlaps a reservation or another clinic.
func (s *Service) checkClinicCells(c schedule.Clinic) error {
	if _, err := time.Parse(schedule.DateLayout, c.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidRequest, c.Date)
	}
	start, okStart := schedule.ParseHour(c.StartTime)
	end, okEnd := schedule.ParseHour(c.EndTime)
	if !okStart || !okEnd || end <= start {
		return fmt.Errorf("%w: time range %q-%q", ErrInvalidRequest, c.StartTime, c.EndTime)
	}
	snap := s.store.Snapshot()
	if !hasCourt(snap.Courts, c.CourtID) {
		return fmt.Errorf("%w: %s", club.ErrCourtNotFound, c.CourtID)
	}

	ix := snap.Index
	for h := start; h < end; h++ {
		status := ix.Resolve(c.CourtID, c.Date, h)
		if status.Reservation != nil || (status.Slot != nil && status.Slot.IsClinic() && status.Slot.Clinic.ClinicID != c.ID) {
			return fmt.Errorf("%w: %s at %s (%s)", club.ErrSlotUnavailable, c.CourtID, schedule.FormatHour(h), status.Reason)
		}
	}
	return nil
}

// Cell resolves a single cell.
func (s *Service) Cell(courtID, date, hour string) (schedule.SlotStatus, error) {
	key, err := parseKey(courtID, date, hour)
	if err != nil {
		return schedule.SlotStatus{}, err
	}
	return s.store.Index().ResolveKey(key), nil
}

// DayView resolves every court and hour of one date against one snapshot.
func (s *Service) DayView(date string) (DayView, error) {
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return DayView{}, fmt.Errorf("%w: date %q", ErrInvalidRequest, date)
	}
	snap := s.store.Snapshot()
	ix := snap.Index

	view := DayView{Date: date, Hours: s.hourLabels(), Courts: make([]CourtRow, 0, len(snap.Courts))}
	for _, court := range snap.Courts {
		row := CourtRow{Court: court, Cells: make([]schedule.SlotStatus, 0, len(s.hours))}
		for _, h := range s.hours {
			row.Cells = append(row.Cells, ix.Resolve(court.ID, date, h))
		}
		view.Courts = append(view.Courts, row)
	}
	return view, nil
}

// WeekView resolves seven days of one court starting at start.
func (s *Service) WeekView(courtID, start string) (WeekView, error) {
	from, err := time.Parse(schedule.DateLayout, start)
	if err != nil {
		return WeekView{}, fmt.Errorf("%w: date %q", ErrInvalidRequest, start)
	}
	snap := s.store.Snapshot()
	var court *schedule.Court
	courts := snap.Courts
	for i := range courts {
		if courts[i].ID == courtID {
			court = &courts[i]
			break
		}
	}
	if court == nil {
		return WeekView{}, fmt.Errorf("%w: %s", club.ErrCourtNotFound, courtID)
	}

	ix := snap.Index
	view := WeekView{Court: *court, Hours: s.hourLabels()}
	for _, date := range (schedule.DateRange{Start: from, Days: 7}).Dates() {
		row := DayRow{Date: date, Cells: make([]schedule.SlotStatus, 0, len(s.hours))}
		for _, h := range s.hours {
			row.Cells = append(row.Cells, ix.Resolve(courtID, date, h))
		}
		view.Days = append(view.Days, row)
	}
	return view, nil
}

// Stats summarizes today's availability and the durable counters.
func (s *Service) Stats() (Stats, error) {
	snap := s.store.Snapshot()
	ix := snap.Index
	today := s.now().Format(schedule.DateLayout)

	stats := Stats{Courts: len(snap.Courts), Coaches: len(snap.Coaches)}
	for _, r := range snap.Reservations {
		if r.Status == schedule.ReservationConfirmed {
			stats.ActiveReservations++
		}
	}
	for _, c := range snap.Clinics {
		if c.Status == schedule.ClinicScheduled {
			stats.ScheduledClinics++
		}
	}
	for _, court := range snap.Courts {
		for _, h := range s.hours {
			status := ix.Resolve(court.ID, today, h)
			if status.Slot == nil {
				continue
			}
			stats.SlotsToday++
			if status.Bookable() {
				stats.AvailableToday++
			}
		}
	}

	if s.counters != nil {
		counters, err := s.counters.GetAll()
		if err != nil {
			return Stats{}, err
		}
		stats.Counters = counters
	}
	return stats, nil
}

// Agenda lists the occupied cells of one date in time order.
func (s *Service) Agenda(date string) []notifier.AgendaEntry {
	snap := s.store.Snapshot()
	ix := snap.Index

	type entry struct {
		hour  int
		court int
		notifier.AgendaEntry
	}
	var entries []entry
	for ci, court := range snap.Courts {
		for _, h := range s.hours {
			status := ix.Resolve(court.ID, date, h)
			label := ""
			switch {
			case status.Slot != nil && status.Slot.IsClinic():
				label = "Clinic: " + status.Slot.Clinic.Title
			case status.Reservation != nil:
				label = status.Reservation.PlayerName
			default:
				continue
			}
			entries = append(entries, entry{hour: h, court: ci, AgendaEntry: notifier.AgendaEntry{
				CourtName: court.Name,
				StartTime: schedule.FormatHour(h),
				Label:     label,
			}})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].hour != entries[j].hour {
			return entries[i].hour < entries[j].hour
		}
		return entries[i].court < entries[j].court
	})

	agenda := make([]notifier.AgendaEntry, 0, len(entries))
	for _, e := range entries {
		agenda = append(agenda, e.AgendaEntry)
	}
	return agenda
}

func (s *Service) reservationNotice(r schedule.Reservation) notifier.ReservationNotice {
	snap := s.store.Snapshot()
	notice := notifier.ReservationNotice{
		ReservationID: r.ID,
		CourtName:     schedule.CourtName(snap.Courts, r.CourtID),
		PlayerName:    r.PlayerName,
		PlayerEmail:   r.PlayerEmail,
		Players:       r.Players,
	}
	for _, slot := range snap.Slots {
		if slot.ID == r.TimeSlotID {
			notice.Date = slot.Date
			notice.StartTime = slot.StartTime
			notice.EndTime = slot.EndTime
			break
		}
	}
	return notice
}

// publish sends a notification. Failures are logged, the booking itself has
// already succeeded.
func (s *Service) publish(ctx context.Context, topic pubsub.EventType, data any) {
	if s.pubsub == nil {
		return
	}
	if err := s.pubsub.SendMessage(ctx, topic, data); err != nil {
		log.Error("Failed to publish notification", "topic", topic, "error", err)
		s.metrics.IncNotifFailed()
	}
}

func (s *Service) count(key string) {
	if s.counters != nil {
		s.counters.Increment(key)
	}
}

func (s *Service) hourLabels() []string {
	labels := make([]string, 0, len(s.hours))
	for _, h := range s.hours {
		labels = append(labels, schedule.FormatHour(h))
	}
	return labels
}

// parseKey validates a cell address from user input.
func parseKey(courtID, date, hour string) (schedule.SlotKey, error) {
	if courtID == "" {
		return schedule.SlotKey{}, fmt.Errorf("%w: court is required", ErrInvalidRequest)
	}
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return schedule.SlotKey{}, fmt.Errorf("%w: date %q", ErrInvalidRequest, date)
	}
	h, ok := schedule.ParseHour(hour)
	if !ok {
		return schedule.SlotKey{}, fmt.Errorf("%w: hour %q", ErrInvalidRequest, hour)
	}
	return schedule.SlotKey{CourtID: courtID, Date: date, Hour: h}, nil
}

func hasCourt(courts []schedule.Court, id string) bool {
	for _, c := range courts {
		if c.ID == id {
			return true
		}
	}
	return false
}

func hasCoach(coaches []schedule.Coach, id string) bool {
	for _, c := range coaches {
		if c.ID == id {
			return true
		}
	}
	return false
}
