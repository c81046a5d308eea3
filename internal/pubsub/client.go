package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. Topics are named after EventType.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	c, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{client: c}, nil
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{AttributeType: string(topic)},
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) Close() error {
	return c.client.Close()
}

// NewInline returns a client that hands every message straight to handler
// in the caller's goroutine. It is used when no GCP project is configured;
// messages still go through the msgpack encoding.
func NewInline(handler Handler) PubSubClient {
	return &inlineClient{handler: handler}
}

func (c *inlineClient) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	if c.handler == nil {
		log.Debug("No inline handler, dropping message", "topic", topic)
		return nil
	}
	return c.handler(ctx, topic, msgpackData)
}

func (c *inlineClient) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *inlineClient) Close() error {
	return nil
}

func decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// DecodePush parses a push request body into its topic and raw payload.
func DecodePush(body []byte) (EventType, []byte, error) {
	var envelope PushEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", nil, fmt.Errorf("invalid push envelope: %w", err)
	}
	topic := EventType(envelope.Message.Attributes[AttributeType])
	if topic == "" {
		return "", nil, errors.New("push message has no type attribute")
	}
	raw, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return topic, raw, nil
}
