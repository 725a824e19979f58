package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing cart events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// CartItemAddedEvent is emitted after a successful add. Quantity is the new line quantity.
type CartItemAddedEvent struct {
	CartKey    string    `json:"cartKey"`
	Subject    string    `json:"subject"`
	UserID     int64     `json:"userId"`
	ItemID     int64     `json:"itemId"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}

// CartItemRemovedEvent is emitted after a successful remove. Quantity is what is
// left in the cart, 0 when the line was deleted.
type CartItemRemovedEvent struct {
	CartKey    string    `json:"cartKey"`
	Subject    string    `json:"subject"`
	UserID     int64     `json:"userId"`
	ItemID     int64     `json:"itemId"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}

// LogEventPublisher is used when Kafka is disabled; events only reach the log
type LogEventPublisher struct {
	logger *zap.Logger
}

func NewLogEventPublisher(logger *zap.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.logger.Debug("Event published (log only)",
		zap.String("event-type", eventType(event)),
		zap.Any("event", event),
	)
	return nil
}

// eventType returns the event type as string
func eventType(event interface{}) string {
	switch event.(type) {
	case CartItemAddedEvent:
		return "CartItemAdded"
	case CartItemRemovedEvent:
		return "CartItemRemoved"
	default:
		return "Unknown"
	}
}

// partitionKey keeps all events of one cart on one partition
func partitionKey(event interface{}) string {
	switch e := event.(type) {
	case CartItemAddedEvent:
		return e.CartKey
	case CartItemRemovedEvent:
		return e.CartKey
	default:
		return ""
	}
}
