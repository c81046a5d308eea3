package pubsub

import "context"

// PubSubClient publishes msgpack-encoded notifications and decodes them on
// the receiving side.
type PubSubClient interface {
	SendMessage(ctx context.Context, topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}
