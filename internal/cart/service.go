package cart

import (
	"context"
	"time"

	"cart-service/internal/auth"
	"cart-service/internal/events"
	"cart-service/internal/models"
	"cart-service/internal/repository"

	"go.uber.org/zap"
)

// Service composes the catalog, the cart store and the event publisher
type Service struct {
	catalog   repository.InventoryRepository
	store     Store
	publisher events.EventPublisher
	logger    *zap.Logger
}

func NewService(catalog repository.InventoryRepository, store Store, publisher events.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		catalog:   catalog,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// AddToCart adds one unit of itemID to the caller's cart. The catalog item is
// returned whenever it was found, even if the cart write failed afterwards.
func (s *Service) AddToCart(ctx context.Context, identity auth.Identity, itemID int64) (*models.Item, models.CartLineItem, error) {
	item, err := s.catalog.FindByID(ctx, itemID)
	if err != nil {
		return nil, models.CartLineItem{}, err
	}

	key := Key(identity.Subject, identity.UserID)
	line, err := s.store.AddItem(ctx, key, *item)
	if err != nil {
		return item, models.CartLineItem{}, err
	}

	s.logger.Info("Item added to cart",
		zap.String("cart_key", key),
		zap.Int64("item_id", itemID),
		zap.Int("quantity", line.Quantity),
	)

	s.publish(ctx, events.CartItemAddedEvent{
		CartKey:    key,
		Subject:    identity.Subject,
		UserID:     identity.UserID,
		ItemID:     itemID,
		Quantity:   line.Quantity,
		OccurredAt: time.Now().UTC(),
	})

	return item, line, nil
}

// ViewCart returns the caller's cart; an empty or expired cart yields an empty slice
func (s *Service) ViewCart(ctx context.Context, identity auth.Identity) ([]models.CartLineItem, error) {
	return s.store.Items(ctx, Key(identity.Subject, identity.UserID))
}

// RemoveFromCart takes one unit of itemID out of the caller's cart
func (s *Service) RemoveFromCart(ctx context.Context, identity auth.Identity, itemID int64) (models.CartLineItem, error) {
	key := Key(identity.Subject, identity.UserID)
	line, err := s.store.RemoveItem(ctx, key, itemID)
	if err != nil {
		return models.CartLineItem{}, err
	}

	s.logger.Info("Item removed from cart",
		zap.String("cart_key", key),
		zap.Int64("item_id", itemID),
		zap.Int("remaining", line.Quantity),
	)

	s.publish(ctx, events.CartItemRemovedEvent{
		CartKey:    key,
		Subject:    identity.Subject,
		UserID:     identity.UserID,
		ItemID:     itemID,
		Quantity:   line.Quantity,
		OccurredAt: time.Now().UTC(),
	})

	return line, nil
}

// publish never fails the request; the cart write already happened
func (s *Service) publish(ctx context.Context, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}
