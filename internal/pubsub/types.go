package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
)

// EventType names a notification topic. Each topic is also carried as the
// "type" attribute so a single push subscription can serve all of them.
type EventType string

const (
	EventNotifyReservation  EventType = "notify-reservation"
	EventNotifyCancellation EventType = "notify-cancellation"
	EventNotifyEnrollment   EventType = "notify-enrollment"
)

// AttributeType is the message attribute holding the EventType.
const AttributeType = "type"

// Handler consumes a decoded message body for one topic.
type Handler func(ctx context.Context, topic EventType, data []byte) error

type client struct {
	client *pubsub.Client
}

type inlineClient struct {
	handler Handler
}

// PushEnvelope is the body Pub/Sub POSTs to push endpoints.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}
