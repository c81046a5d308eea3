package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

const (
	today    = "2025-03-10"
	tomorrow = "2025-03-11"
)

type fixture struct {
	svc      *booking.Service
	store    club.ClubStore
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Mock
	counters *metrics.CounterStoreMock
}

func setup(t *testing.T) fixture {
	t.Helper()

	store := club.New(club.Options{
		Seed: club.Seed{
			Courts: []schedule.Court{
				{ID: "1", Name: "Center Court"},
				{ID: "2", Name: "North Court"},
			},
			Coaches: []schedule.Coach{{ID: "coach-1", Name: "Maria Lopez"}},
			Clinics: []schedule.Clinic{
				{ID: "tpl", CoachID: "coach-1", Title: "Basics", MaxParticipants: 4, Status: schedule.ClinicTemplate},
				{ID: "serve", CoachID: "coach-1", Title: "Serve Lab", Date: tomorrow, StartTime: "10:00", EndTime: "12:00", CourtID: "2", MaxParticipants: 1, Status: schedule.ClinicScheduled},
			},
		},
		WindowDays: 7,
		OpenHour:   9,
		CloseHour:  12,
		Now:        func() time.Time { return now },
	})
	t.Cleanup(func() { store.Close(context.Background()) })

	f := fixture{
		store:    store,
		pubsub:   pubsub.NewMock(),
		metrics:  metrics.NewMock(),
		counters: metrics.NewCounterStoreMock(),
	}
	f.svc = booking.New(booking.Options{
		Store:     store,
		PubSub:    f.pubsub,
		Metrics:   f.metrics,
		Counters:  f.counters,
		OpenHour:  9,
		CloseHour: 12,
		Now:       func() time.Time { return now },
	})
	return f
}

func TestBook(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	r, err := f.svc.Book(ctx, booking.BookRequest{CourtID: "1", Date: today, Hour: "9:00", PlayerName: " Alice ", Players: 4})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, schedule.SlotID(today, "1", 9), r.TimeSlotID)
	assert.Equal(t, "Alice", r.PlayerName)
	assert.Equal(t, schedule.ReservationConfirmed, r.Status)

	cell, err := f.svc.Cell("1", today, "09")
	require.NoError(t, err)
	assert.Equal(t, "Reserved by Alice", cell.Reason)

	assert.Equal(t, 1, f.metrics.ReservationsCreated())
	counters, _ := f.counters.GetAll()
	assert.Equal(t, 1, counters[metrics.KeyReservationsCreated])

	sent := f.pubsub.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, pubsub.EventNotifyReservation, sent[0].Topic)
	notice, ok := sent[0].Data.(notifier.ReservationNotice)
	require.True(t, ok)
	assert.Equal(t, notifier.ReservationNotice{
		ReservationID: r.ID,
		CourtName:     "Center Court",
		Date:          today,
		StartTime:     "09:00",
		EndTime:       "10:00",
		PlayerName:    "Alice",
		Players:       4,
	}, notice)
}

func TestBook_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Book(ctx, booking.BookRequest{CourtID: "1", Date: today, Hour: "10", PlayerName: "Alice"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  booking.BookRequest
		want error
	}{
		{"missing name", booking.BookRequest{CourtID: "1", Date: today, Hour: "11"}, booking.ErrInvalidRequest},
		{"bad date", booking.BookRequest{CourtID: "1", Date: "10/03/2025", Hour: "11", PlayerName: "Bob"}, booking.ErrInvalidRequest},
		{"bad hour", booking.BookRequest{CourtID: "1", Date: today, Hour: "noon", PlayerName: "Bob"}, booking.ErrInvalidRequest},
		{"already reserved", booking.BookRequest{CourtID: "1", Date: today, Hour: "10", PlayerName: "Bob"}, club.ErrSlotUnavailable},
		{"clinic", booking.BookRequest{CourtID: "2", Date: tomorrow, Hour: "11", PlayerName: "Bob"}, club.ErrSlotUnavailable},
		{"outside opening hours", booking.BookRequest{CourtID: "1", Date: today, Hour: "20", PlayerName: "Bob"}, club.ErrSlotUnavailable},
		{"unknown slot id", booking.BookRequest{TimeSlotID: "slot-x", PlayerName: "Bob"}, club.ErrSlotNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Book(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Len(t, f.pubsub.Sent(), 1)
}

func TestBook_StoreErrorSendsNothing(t *testing.T) {
	store := club.NewMock()
	store.ReserveFunc = func(r schedule.Reservation) (schedule.Reservation, error) {
		return schedule.Reservation{}, club.ErrSlotUnavailable
	}
	ps := pubsub.NewMock()
	m := metrics.NewMock()
	svc := booking.New(booking.Options{Store: store, PubSub: ps, Metrics: m})

	_, err := svc.Book(context.Background(), booking.BookRequest{TimeSlotID: "slot-1", PlayerName: "Alice"})
	assert.ErrorIs(t, err, club.ErrSlotUnavailable)
	require.Len(t, store.ReserveCalls, 1)
	assert.Equal(t, 1, store.ReserveCalls[0].Players)
	assert.Empty(t, ps.Sent())
	assert.Equal(t, 0, m.ReservationsCreated())
}

func TestBook_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := setup(t)
	f.pubsub.SendMessageFunc = func(topic pubsub.EventType, data any) error { return errors.New("pubsub down") }

	_, err := f.svc.Book(context.Background(), booking.BookRequest{CourtID: "1", Date: today, Hour: "11", PlayerName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.NotifFailed())
}

func TestCancelAndComplete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r, err := f.svc.Book(ctx, booking.BookRequest{CourtID: "2", Date: today, Hour: "9", PlayerName: "Alice"})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.ReservationCancelled, cancelled.Status)
	assert.Equal(t, 1, f.metrics.ReservationsCancelled())

	cell, _ := f.svc.Cell("2", today, "9")
	assert.True(t, cell.Bookable())

	sent := f.pubsub.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, pubsub.EventNotifyCancellation, sent[1].Topic)

	_, err = f.svc.Complete(r.ID)
	assert.ErrorIs(t, err, club.ErrReservationClosed)

	r2, err := f.svc.Book(ctx, booking.BookRequest{CourtID: "2", Date: today, Hour: "9", PlayerName: "Bob"})
	require.NoError(t, err)
	done, err := f.svc.Complete(r2.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.ReservationCompleted, done.Status)
	cell, _ = f.svc.Cell("2", today, "9")
	assert.Equal(t, "Reserved by Bob", cell.Reason)

	_, err = f.svc.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, club.ErrReservationNotFound)
}

func TestEnroll(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	clinic, err := f.svc.Enroll(ctx, "serve", booking.EnrollRequest{Name: "Ann", Email: " Ann@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, 1, clinic.Enrolled)
	assert.Equal(t, "ann@example.com", clinic.Participants[0].Email)
	assert.Equal(t, 1, f.metrics.ClinicEnrollments())

	sent := f.pubsub.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, pubsub.EventNotifyEnrollment, sent[0].Topic)
	notice := sent[0].Data.(notifier.EnrollmentNotice)
	assert.Equal(t, "Maria Lopez", notice.CoachName)
	assert.Equal(t, "North Court", notice.CourtName)
	assert.Equal(t, "Ann", notice.ParticipantName)

	_, err = f.svc.Enroll(ctx, "serve", booking.EnrollRequest{Name: "Ben"})
	assert.ErrorIs(t, err, club.ErrClinicFull)

	_, err = f.svc.Enroll(ctx, "tpl", booking.EnrollRequest{Name: "Ben"})
	assert.ErrorIs(t, err, club.ErrClinicNotScheduled)

	_, err = f.svc.Enroll(ctx, "serve", booking.EnrollRequest{})
	assert.ErrorIs(t, err, booking.ErrInvalidRequest)
}

func TestBlockAndUnblockSlot(t *testing.T) {
	f := setup(t)

	slot, err := f.svc.BlockSlot(booking.BlockRequest{CourtID: "1", Date: today, Hour: "11:00", Reason: "Maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "11:00", slot.StartTime)

	cell, _ := f.svc.Cell("1", today, "11")
	assert.False(t, cell.Available)
	assert.True(t, cell.Reserved)
	assert.Equal(t, "Maintenance", cell.Reason)
	counters, _ := f.counters.GetAll()
	assert.Equal(t, 1, counters[metrics.KeySlotsBlocked])

	require.NoError(t, f.svc.UnblockSlot(slot.ID))
	cell, _ = f.svc.Cell("1", today, "11")
	assert.True(t, cell.Bookable())

	assert.ErrorIs(t, f.svc.UnblockSlot(slot.ID), club.ErrSlotNotFound)
	_, err = f.svc.BlockSlot(booking.BlockRequest{CourtID: "1", Date: "", Hour: "11"})
	assert.ErrorIs(t, err, booking.ErrInvalidRequest)
	_, err = f.svc.BlockSlot(booking.BlockRequest{CourtID: "9", Date: today, Hour: "11"})
	assert.ErrorIs(t, err, club.ErrCourtNotFound)
}

func TestScheduleFromTemplate(t *testing.T) {
	f := setup(t)

	clinic, err := f.svc.ScheduleFromTemplate("tpl", booking.ScheduleRequest{Date: today, StartTime: "10:00", EndTime: "12:00", CourtID: "1"})
	require.NoError(t, err)
	assert.NotEqual(t, "tpl", clinic.ID)
	assert.Equal(t, "Basics", clinic.Title)
	assert.Equal(t, schedule.ClinicScheduled, clinic.Status)

	for _, h := range []string{"10", "11"} {
		cell, _ := f.svc.Cell("1", today, h)
		assert.Equal(t, schedule.ReasonClinicSession, cell.Reason)
	}

	// The template itself stays off the calendar.
	tpl, err := f.store.Clinic("tpl")
	require.NoError(t, err)
	assert.Equal(t, schedule.ClinicTemplate, tpl.Status)

	t.Run("overlapping clinic", func(t *testing.T) {
		_, err := f.svc.ScheduleFromTemplate("tpl", booking.ScheduleRequest{Date: today, StartTime: "11:00", EndTime: "12:00", CourtID: "1"})
		assert.ErrorIs(t, err, club.ErrSlotUnavailable)
	})

	t.Run("overlapping reservation", func(t *testing.T) {
		_, err := f.svc.Book(context.Background(), booking.BookRequest{CourtID: "2", Date: today, Hour: "9", PlayerName: "Alice"})
		require.NoError(t, err)
		_, err = f.svc.ScheduleFromTemplate("tpl", booking.ScheduleRequest{Date: today, StartTime: "9:00", EndTime: "10:00", CourtID: "2"})
		assert.ErrorIs(t, err, club.ErrSlotUnavailable)
	})

	t.Run("not a template", func(t *testing.T) {
		_, err := f.svc.ScheduleFromTemplate("serve", booking.ScheduleRequest{Date: today, StartTime: "9:00", EndTime: "10:00", CourtID: "1"})
		assert.ErrorIs(t, err, booking.ErrNotTemplate)
	})

	t.Run("bad range", func(t *testing.T) {
		_, err := f.svc.ScheduleFromTemplate("tpl", booking.ScheduleRequest{Date: today, StartTime: "11:00", EndTime: "10:00", CourtID: "1"})
		assert.ErrorIs(t, err, booking.ErrInvalidRequest)
	})

	t.Run("unknown court", func(t *testing.T) {
		_, err := f.svc.ScheduleFromTemplate("tpl", booking.ScheduleRequest{Date: tomorrow, StartTime: "9:00", EndTime: "10:00", CourtID: "9"})
		assert.ErrorIs(t, err, club.ErrCourtNotFound)
	})
}

func TestCreateCoachAndClinic(t *testing.T) {
	f := setup(t)

	coach, err := f.svc.CreateCoach(schedule.Coach{Name: "Tom Becker"})
	require.NoError(t, err)
	assert.NotEmpty(t, coach.ID)
	assert.Equal(t, "active", coach.Status)

	clinic, err := f.svc.CreateClinic(schedule.Clinic{CoachID: coach.ID, Title: "Drills"})
	require.NoError(t, err)
	assert.Equal(t, schedule.ClinicTemplate, clinic.Status)

	_, err = f.svc.CreateClinic(schedule.Clinic{CoachID: "ghost", Title: "Drills"})
	assert.ErrorIs(t, err, club.ErrCoachNotFound)

	enrolled, err := f.svc.Enroll(context.Background(), "serve", booking.EnrollRequest{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	_, err = f.svc.CreateClinic(schedule.Clinic{ID: "serve", CoachID: coach.ID, Title: "Drills"})
	assert.ErrorIs(t, err, booking.ErrClinicExists)
	kept, err := f.store.Clinic("serve")
	require.NoError(t, err)
	assert.Equal(t, enrolled.Enrolled, kept.Enrolled)

	_, err = f.svc.CreateCoach(schedule.Coach{})
	assert.ErrorIs(t, err, booking.ErrInvalidRequest)

	cancelled, err := f.svc.CancelClinic("serve")
	require.NoError(t, err)
	assert.Equal(t, schedule.ClinicCancelled, cancelled.Status)
	cell, _ := f.svc.Cell("2", tomorrow, "10")
	assert.True(t, cell.Bookable())
}

func TestDayView(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Book(context.Background(), booking.BookRequest{CourtID: "2", Date: tomorrow, Hour: "9", PlayerName: "Alice"})
	require.NoError(t, err)

	view, err := f.svc.DayView(tomorrow)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, view.Hours)
	require.Len(t, view.Courts, 2)

	north := view.Courts[1]
	assert.Equal(t, "North Court", north.Court.Name)
	reasons := make([]string, 0, len(north.Cells))
	for _, c := range north.Cells {
		reasons = append(reasons, c.Reason)
	}
	assert.Equal(t, []string{"Reserved by Alice", "Clinic Session", "Clinic Session"}, reasons)

	_, err = f.svc.DayView("tomorrow")
	assert.ErrorIs(t, err, booking.ErrInvalidRequest)
}

func TestViews_ResolveAgainstOneSnapshot(t *testing.T) {
	slot := schedule.TimeSlot{ID: "s1", CourtID: "1", Date: today, StartTime: "09:00", EndTime: "10:00", Available: true}
	ix, _ := schedule.BuildIndex([]schedule.TimeSlot{slot}, []schedule.Reservation{
		{ID: "r1", TimeSlotID: "s1", PlayerName: "Alice", Status: schedule.ReservationConfirmed},
	})
	store := club.NewMock()
	store.SnapshotFunc = func() club.Snapshot {
		return club.Snapshot{
			Version: 3,
			Courts:  []schedule.Court{{ID: "1", Name: "Center Court"}},
			Slots:   []schedule.TimeSlot{slot},
			Index:   ix,
		}
	}
	store.IndexFunc = func() *schedule.Index {
		t.Error("views must resolve with the index of their snapshot")
		empty, _ := schedule.BuildIndex(nil, nil)
		return empty
	}
	svc := booking.New(booking.Options{Store: store, OpenHour: 9, CloseHour: 10, Now: func() time.Time { return now }})

	view, err := svc.DayView(today)
	require.NoError(t, err)
	require.Len(t, view.Courts, 1)
	assert.Equal(t, "Reserved by Alice", view.Courts[0].Cells[0].Reason)

	week, err := svc.WeekView("1", today)
	require.NoError(t, err)
	assert.Equal(t, "Reserved by Alice", week.Days[0].Cells[0].Reason)

	agenda := svc.Agenda(today)
	require.Len(t, agenda, 1)
	assert.Equal(t, "Alice", agenda[0].Label)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SlotsToday)
	assert.Zero(t, stats.AvailableToday)
}

func TestWeekView(t *testing.T) {
	f := setup(t)

	view, err := f.svc.WeekView("1", "2025-03-14")
	require.NoError(t, err)
	require.Len(t, view.Days, 7)
	assert.Equal(t, "2025-03-14", view.Days[0].Date)
	// The window ends on 2025-03-16.
	assert.True(t, view.Days[2].Cells[0].Bookable())
	assert.Equal(t, schedule.ReasonUnavailable, view.Days[3].Cells[0].Reason)

	_, err = f.svc.WeekView("9", today)
	assert.ErrorIs(t, err, club.ErrCourtNotFound)
}

func TestStats(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Book(context.Background(), booking.BookRequest{CourtID: "1", Date: today, Hour: "9", PlayerName: "Alice"})
	require.NoError(t, err)

	stats, err := f.svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Courts)
	assert.Equal(t, 1, stats.Coaches)
	assert.Equal(t, 1, stats.ActiveReservations)
	assert.Equal(t, 1, stats.ScheduledClinics)
	assert.Equal(t, 6, stats.SlotsToday)
	assert.Equal(t, 5, stats.AvailableToday)
	assert.Equal(t, 1, stats.Counters[metrics.KeyReservationsCreated])
}

func TestAgenda(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Book(ctx, booking.BookRequest{CourtID: "1", Date: tomorrow, Hour: "11", PlayerName: "Alice"})
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, booking.BookRequest{CourtID: "1", Date: tomorrow, Hour: "9", PlayerName: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, []notifier.AgendaEntry{
		{CourtName: "Center Court", StartTime: "09:00", Label: "Bob"},
		{CourtName: "North Court", StartTime: "10:00", Label: "Clinic: Serve Lab"},
		{CourtName: "Center Court", StartTime: "11:00", Label: "Alice"},
		{CourtName: "North Court", StartTime: "11:00", Label: "Clinic: Serve Lab"},
	}, f.svc.Agenda(tomorrow))
}
