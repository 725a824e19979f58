// Package kafka consumes inventory events and drops the cached storefront
// listing whenever the catalog changes.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cart-service/internal/cache"
	"cart-service/internal/config"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const eventTypeHeader = "event-type"

// ErrUnknownEventType is returned for events that do not affect the catalog
var ErrUnknownEventType = errors.New("unknown event type")

// Consumer reads inventory events from a consumer group
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       *InvalidationHandler
	logger        *zap.Logger
	groupID       string
	topics        []string
}

// ConsumerConfig builds the sarama settings used by NewConsumer
func ConsumerConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Version = sarama.V2_8_0_0
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second
	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond
	return saramaConfig
}

func NewConsumer(cfg *config.Config, cacheClient cache.Cache, logger *zap.Logger) (*Consumer, error) {
	logger.Info("Creating Kafka consumer",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("group_id", cfg.KafkaGroupID),
		zap.String("topic", cfg.KafkaTopicItems),
	)

	consumerGroup, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroupID, ConsumerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		handler:       NewInvalidationHandler(cacheClient, logger),
		logger:        logger,
		groupID:       cfg.KafkaGroupID,
		topics:        []string{cfg.KafkaTopicItems},
	}, nil
}

// Start consumes until ctx is cancelled or the group is closed
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.consumerGroup.Errors() {
			c.logger.Error("Consumer error", zap.Error(err))
		}
	}()

	c.logger.Info("Kafka consumer started",
		zap.Strings("topics", c.topics),
		zap.String("group_id", c.groupID),
	)

	for {
		// Consume returns on every rebalance
		if err := c.consumerGroup.Consume(ctx, c.topics, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consume: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

// InvalidationHandler implements sarama.ConsumerGroupHandler
type InvalidationHandler struct {
	cache  cache.Cache
	logger *zap.Logger
}

func NewInvalidationHandler(cacheClient cache.Cache, logger *zap.Logger) *InvalidationHandler {
	return &InvalidationHandler{cache: cacheClient, logger: logger}
}

func (h *InvalidationHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *InvalidationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every message, including the ones it could not act on
func (h *InvalidationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			eventType := extractEventType(message.Headers)
			if err := h.Handle(session.Context(), eventType, message.Value); err != nil {
				h.logger.Warn("Skipping inventory event",
					zap.String("event_type", eventType),
					zap.String("topic", message.Topic),
					zap.Int32("partition", message.Partition),
					zap.Int64("offset", message.Offset),
					zap.Error(err),
				)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// Handle applies one inventory event to the cache
func (h *InvalidationHandler) Handle(ctx context.Context, eventType string, payload []byte) error {
	switch eventType {
	case "InventoryItemCreated", "InventoryItemUpdated", "InventoryItemDeleted", "StockAdjusted":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}

	h.logger.Info("Invalidating store listing",
		zap.String("event_type", eventType),
		zap.Int64("item_id", itemIDOf(payload)),
	)

	if err := h.cache.DeleteByPattern(ctx, cache.StoreKeyPattern); err != nil {
		return fmt.Errorf("delete %s: %w", cache.StoreKeyPattern, err)
	}
	return nil
}

func extractEventType(headers []*sarama.RecordHeader) string {
	for _, header := range headers {
		if header != nil && string(header.Key) == eventTypeHeader {
			return string(header.Value)
		}
	}
	return ""
}

// itemIDOf reads the item id for logging; 0 when absent or unparsable
func itemIDOf(payload []byte) int64 {
	var event struct {
		ItemID int64 `json:"itemId"`
		ID     int64 `json:"id"`
	}
	if len(payload) == 0 || json.Unmarshal(payload, &event) != nil {
		return 0
	}
	if event.ItemID != 0 {
		return event.ItemID
	}
	return event.ID
}
