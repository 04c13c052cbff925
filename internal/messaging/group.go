package messaging

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable is one topic consumer the group can manage.
type Runnable interface {
	Topic() string
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup runs a set of consumers over one shared subscriber and tears
// everything down together, subscriber included.
type ConsumerGroup struct {
	subscriber message.Subscriber
	consumers  []Runnable
	logger     *zap.Logger
}

// NewConsumerGroup creates an empty group over subscriber.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer. Not safe to call after Start.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.consumers = append(g.consumers, consumer)
}

// Start starts every consumer. If one fails, the ones already running are
// shut down and the subscriber is closed, so a partial start leaves nothing
// behind.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	var started []Runnable

	for _, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				_ = started[i].Shutdown()
			}

			_ = g.subscriber.Close()

			return fmt.Errorf("start consumer for %s: %w", consumer.Topic(), err)
		}

		started = append(started, consumer)
	}

	topics := make([]string, len(g.consumers))
	for i, consumer := range g.consumers {
		topics[i] = consumer.Topic()
	}

	g.logger.Info("consumer group started", zap.Strings("topics", topics))

	return nil
}

// Shutdown drains every consumer, then closes the subscriber. The first
// error wins; later failures are still attempted.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("consumer group shutting down")

	var firstErr error

	for _, consumer := range g.consumers {
		if err := consumer.Shutdown(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shutdown consumer for %s: %w", consumer.Topic(), err)
		}
	}

	if err := g.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
