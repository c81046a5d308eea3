package notifier

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
)

// Dispatcher turns notification messages received over pubsub into
// notifier calls.
type Dispatcher struct {
	notifier Notifier
	client   pubsub.PubSubClient
}

// NewDispatcher creates a Dispatcher that decodes messages with client.
func NewDispatcher(n Notifier, client pubsub.PubSubClient) *Dispatcher {
	return &Dispatcher{notifier: n, client: client}
}

// SetClient replaces the decoding client. An inline pubsub client needs the
// dispatcher as its handler, so the two are wired in two steps.
func (d *Dispatcher) SetClient(client pubsub.PubSubClient) {
	d.client = client
}

// Handle decodes data for topic and sends the matching notification.
func (d *Dispatcher) Handle(ctx context.Context, topic pubsub.EventType, data []byte, dryRun bool) error {
	switch topic {
	case pubsub.EventNotifyReservation, pubsub.EventNotifyCancellation:
		var notice ReservationNotice
		if err := d.client.ProcessMessage(data, &notice); err != nil {
			return fmt.Errorf("failed to decode %s: %w", topic, err)
		}
		if topic == pubsub.EventNotifyCancellation {
			return d.notifier.SendReservationCancelled(notice, dryRun)
		}
		return d.notifier.SendReservationConfirmation(notice, dryRun)
	case pubsub.EventNotifyEnrollment:
		var notice EnrollmentNotice
		if err := d.client.ProcessMessage(data, &notice); err != nil {
			return fmt.Errorf("failed to decode %s: %w", topic, err)
		}
		return d.notifier.SendEnrollmentConfirmation(notice, dryRun)
	default:
		log.Warn("Ignoring message with unknown topic", "topic", topic)
		return fmt.Errorf("unknown topic %q", topic)
	}
}

// Inline adapts Handle to a pubsub.Handler that never dry-runs.
func (d *Dispatcher) Inline() pubsub.Handler {
	return func(ctx context.Context, topic pubsub.EventType, data []byte) error {
		return d.Handle(ctx, topic, data, false)
	}
}
