package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends one typed event to its stream.
type Publish[T any] func(event T) error

// NewPublishFunc returns a Publish that JSON-encodes events onto topic.
// Message UUIDs come from watermill; the publish timestamp travels as
// metadata so consumers can measure stream lag.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("published_at", time.Now().UTC().Format(time.RFC3339Nano))

		if err := publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish %s event: %w", topic, err)
		}

		return nil
	}
}

// PublisherGroup owns the watermill publisher so the container can close the
// underlying connection during shutdown, after the HTTP server has drained.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps publisher for lifecycle management.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the wrapped publisher for building typed publish funcs.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the wrapped publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
