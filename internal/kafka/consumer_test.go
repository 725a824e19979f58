package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"cart-service/internal/cache"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context {
	return s.ctx
}

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.messages
}

func message(offset int64, eventType string, value string) *sarama.ConsumerMessage {
	msg := &sarama.ConsumerMessage{Topic: "inventory.items", Offset: offset, Value: []byte(value)}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{{Key: []byte("event-type"), Value: []byte(eventType)}}
	}
	return msg
}

func seededCache(t *testing.T) cache.Cache {
	t.Helper()
	c := cache.NewInMemoryCache(zap.NewNop())
	require.NoError(t, c.Set(context.Background(), cache.StoreItemsKey, []byte(`[]`), time.Minute))
	return c
}

func TestInvalidationHandler_Handle(t *testing.T) {
	for _, eventType := range []string{"InventoryItemCreated", "InventoryItemUpdated", "InventoryItemDeleted", "StockAdjusted"} {
		t.Run(eventType, func(t *testing.T) {
			c := seededCache(t)
			handler := NewInvalidationHandler(c, zap.NewNop())

			require.NoError(t, handler.Handle(context.Background(), eventType, []byte(`{"itemId":7}`)))

			_, err := c.Get(context.Background(), cache.StoreItemsKey)
			assert.Equal(t, cache.ErrCacheMiss, err)
		})
	}
}

func TestInvalidationHandler_DropsEveryStoreKey(t *testing.T) {
	c := seededCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "store:items:in_stock", []byte(`[]`), time.Minute))
	require.NoError(t, c.Set(ctx, "idempotency:r1", []byte(`{}`), time.Minute))
	handler := NewInvalidationHandler(c, zap.NewNop())

	require.NoError(t, handler.Handle(ctx, "StockAdjusted", []byte(`{"itemId":1}`)))

	_, err := c.Get(ctx, cache.StoreItemsKey)
	assert.Equal(t, cache.ErrCacheMiss, err)
	_, err = c.Get(ctx, "store:items:in_stock")
	assert.Equal(t, cache.ErrCacheMiss, err)
	_, err = c.Get(ctx, "idempotency:r1")
	assert.NoError(t, err)
}

func TestInvalidationHandler_UnknownEvent(t *testing.T) {
	c := seededCache(t)
	handler := NewInvalidationHandler(c, zap.NewNop())

	err := handler.Handle(context.Background(), "OrderPlaced", nil)
	assert.True(t, errors.Is(err, ErrUnknownEventType))

	_, err = c.Get(context.Background(), cache.StoreItemsKey)
	assert.NoError(t, err)
}

func TestInvalidationHandler_ConsumeClaimMarksEverything(t *testing.T) {
	c := seededCache(t)
	handler := NewInvalidationHandler(c, zap.NewNop())

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	claim.messages <- message(1, "", `{}`)
	claim.messages <- message(2, "Unrelated", `{}`)
	claim.messages <- message(3, "InventoryItemUpdated", `{"id":1}`)
	close(claim.messages)

	session := &fakeSession{ctx: context.Background()}
	require.NoError(t, handler.ConsumeClaim(session, claim))

	assert.Equal(t, []int64{1, 2, 3}, session.marked)

	_, err := c.Get(context.Background(), cache.StoreItemsKey)
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestInvalidationHandler_ConsumeClaimStopsOnCancel(t *testing.T) {
	handler := NewInvalidationHandler(seededCache(t), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}
	session := &fakeSession{ctx: ctx}

	assert.NoError(t, handler.ConsumeClaim(session, claim))
	assert.Empty(t, session.marked)
}

func TestItemIDOf(t *testing.T) {
	assert.Equal(t, int64(7), itemIDOf([]byte(`{"itemId":7}`)))
	assert.Equal(t, int64(3), itemIDOf([]byte(`{"id":3}`)))
	assert.Equal(t, int64(0), itemIDOf([]byte(`not json`)))
	assert.Equal(t, int64(0), itemIDOf(nil))
}

func TestConsumerConfig(t *testing.T) {
	cfg := ConsumerConfig()
	assert.True(t, cfg.Consumer.Return.Errors)
	assert.Equal(t, sarama.OffsetNewest, cfg.Consumer.Offsets.Initial)
	assert.NoError(t, cfg.Validate())
}
