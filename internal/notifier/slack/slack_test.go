package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
	calls                  int
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.calls++
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

// blockTexts flattens the plain text of header, section and context blocks.
func blockTexts(msg slackapi.Message) []string {
	var texts []string
	for _, b := range msg.Blocks.BlockSet {
		switch block := b.(type) {
		case *slackapi.HeaderBlock:
			texts = append(texts, block.Text.Text)
		case *slackapi.SectionBlock:
			if block.Text != nil {
				texts = append(texts, block.Text.Text)
			}
		case *slackapi.ContextBlock:
			for _, el := range block.ContextElements.Elements {
				if txt, ok := el.(*slackapi.TextBlockObject); ok {
					texts = append(texts, txt.Text)
				}
			}
		}
	}
	return texts
}

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", m)

	_, _, err := n.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, m.NotifSent())
}

func TestNewNotifier_NoTokenLogsOnly(t *testing.T) {
	m := metrics.NewMock()
	n := NewNotifier("", "C123", m)

	require.NoError(t, n.SendReservationConfirmation(notifier.ReservationNotice{PlayerName: "Alice"}, false))
	assert.Equal(t, 0, m.NotifSent())
	assert.Equal(t, 0, m.NotifFailed())
}

func TestSendMessage_Success(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendReservationConfirmation(notifier.ReservationNotice{CourtName: "Center Court", PlayerName: "Alice"}, false)

	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, m.NotifSent())
	assert.Equal(t, 0, m.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendEnrollmentConfirmation(notifier.EnrollmentNotice{Title: "Basics"}, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, m.NotifSent())
	assert.Equal(t, 1, m.NotifFailed())
}

func TestFormatReservation(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	msg := n.formatReservation(notifier.ReservationNotice{
		CourtName:  "Center Court",
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "10:00",
		PlayerName: "Alice",
		Players:    4,
	}, "Court booked")

	assert.Equal(t, []string{
		"Court booked",
		"Court: Center Court\nTime: Monday 10 Mar, 09:00–10:00",
		"Booked by Alice (4 players)",
	}, blockTexts(msg))
}

func TestFormatEnrollment_Full(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	msg := n.formatEnrollment(notifier.EnrollmentNotice{
		Title:           "Serve Lab",
		CoachName:       "Tom Becker",
		CourtName:       "North Court",
		Date:            "bad-date",
		StartTime:       "10:00",
		EndTime:         "12:00",
		ParticipantName: "Ann",
		Enrolled:        6,
		MaxParticipants: 6,
	})

	texts := blockTexts(msg)
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Serve Lab")
	assert.Equal(t, "Coach: Tom Becker\nCourt: North Court\nTime: bad-date, 10:00–12:00", texts[1])
	assert.Equal(t, "Ann joined. 6/6 enrolled (full)", texts[2])
}

func TestFormatAgenda(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("empty", func(t *testing.T) {
		texts := blockTexts(n.formatAgenda("2025-03-10", nil))
		require.Len(t, texts, 2)
		assert.Equal(t, "No bookings yet. All courts are open!", texts[1])
	})

	t.Run("entries", func(t *testing.T) {
		texts := blockTexts(n.formatAgenda("2025-03-10", []notifier.AgendaEntry{
			{CourtName: "Center Court", StartTime: "09:00", Label: "Alice"},
			{CourtName: "North Court", StartTime: "10:00", Label: "Clinic: Serve Lab"},
		}))
		require.Len(t, texts, 2)
		assert.Equal(t, "• 09:00 Center Court: Alice\n• 10:00 North Court: Clinic: Serve Lab", texts[1])
	})
}

func TestFormatDayAvailability(t *testing.T) {
	open := schedule.SlotStatus{Available: true, Slot: &schedule.TimeSlot{ID: "s"}, Reason: schedule.ReasonAvailable}
	taken := schedule.SlotStatus{Reserved: true, Slot: &schedule.TimeSlot{ID: "s"}, Reason: "Reserved by Alice"}

	view := booking.DayView{
		Date:  "2025-03-10",
		Hours: []string{"09:00", "10:00"},
		Courts: []booking.CourtRow{
			{Court: schedule.Court{ID: "1", Name: "Center Court"}, Cells: []schedule.SlotStatus{open, taken}},
			{Court: schedule.Court{ID: "2", Name: "North Court"}, Cells: []schedule.SlotStatus{taken, taken}},
		},
	}

	texts := blockTexts(FormatDayAvailability(view))
	require.Len(t, texts, 3)
	assert.Equal(t, "🏓 Open courts on Monday 10 Mar", texts[0])
	assert.Equal(t, "• Center Court: 09:00\n• North Court: fully booked", texts[1])

	texts = blockTexts(FormatDayAvailability(booking.DayView{Date: "2025-03-10"}))
	require.Len(t, texts, 2)
	assert.Equal(t, "No courts are set up yet.", texts[1])
}
