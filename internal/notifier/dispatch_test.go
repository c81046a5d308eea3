package notifier_test

import (
	"context"
	"testing"

	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_InlineRoundTrip(t *testing.T) {
	mock := notifier.NewMock()
	d := notifier.NewDispatcher(mock, nil)
	client := pubsub.NewInline(d.Inline())
	d.SetClient(client)
	ctx := context.Background()

	reservation := notifier.ReservationNotice{ReservationID: "r1", CourtName: "Center Court", Date: "2025-03-10", StartTime: "09:00", PlayerName: "Alice", Players: 4}
	require.NoError(t, client.SendMessage(ctx, pubsub.EventNotifyReservation, reservation))
	require.NoError(t, client.SendMessage(ctx, pubsub.EventNotifyCancellation, reservation))

	enrollment := notifier.EnrollmentNotice{ClinicID: "c1", Title: "Basics", ParticipantName: "Ann", Enrolled: 1, MaxParticipants: 8}
	require.NoError(t, client.SendMessage(ctx, pubsub.EventNotifyEnrollment, enrollment))

	require.Len(t, mock.SendReservationConfirmationCalls, 1)
	assert.Equal(t, reservation, mock.SendReservationConfirmationCalls[0])
	require.Len(t, mock.SendReservationCancelledCalls, 1)
	assert.Equal(t, "r1", mock.SendReservationCancelledCalls[0].ReservationID)
	require.Len(t, mock.SendEnrollmentConfirmationCalls, 1)
	assert.Equal(t, enrollment, mock.SendEnrollmentConfirmationCalls[0])
}

func TestDispatcher_UnknownTopic(t *testing.T) {
	mock := notifier.NewMock()
	d := notifier.NewDispatcher(mock, pubsub.NewMock())

	err := d.Handle(context.Background(), pubsub.EventType("nope"), nil, false)
	assert.Error(t, err)
	assert.Empty(t, mock.SendReservationConfirmationCalls)
}

func TestDispatcher_DecodeError(t *testing.T) {
	mock := notifier.NewMock()
	d := notifier.NewDispatcher(mock, pubsub.NewMock())

	err := d.Handle(context.Background(), pubsub.EventNotifyEnrollment, []byte{0xc1}, false)
	assert.Error(t, err)
	assert.Empty(t, mock.SendEnrollmentConfirmationCalls)
}
