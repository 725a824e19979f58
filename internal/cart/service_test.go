package cart

import (
	"context"
	"errors"
	"testing"

	"cart-service/internal/auth"
	"cart-service/internal/events"
	"cart-service/internal/models"
	"cart-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInventoryRepository is a mock implementation of repository.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

// MockEventPublisher is a mock implementation of events.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// failingStore fails every call with err
type failingStore struct {
	err error
}

func (s failingStore) AddItem(ctx context.Context, key string, item models.Item) (models.CartLineItem, error) {
	return models.CartLineItem{}, s.err
}

func (s failingStore) RemoveItem(ctx context.Context, key string, itemID int64) (models.CartLineItem, error) {
	return models.CartLineItem{}, s.err
}

func (s failingStore) Items(ctx context.Context, key string) ([]models.CartLineItem, error) {
	return nil, s.err
}

var alice = auth.Identity{Subject: "alice", UserID: 1}

func TestService_WidgetScenario(t *testing.T) {
	catalog := repository.NewInMemoryInventoryRepository(widget)
	store, _ := setupMemoryStore()
	service := NewService(catalog, store, events.NewLogEventPublisher(zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	item, line, err := service.AddToCart(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, 1, line.Quantity)

	_, line, err = service.AddToCart(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	lines, err := service.ViewCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, models.CartLineItem{ID: 1, Name: "Widget", Price: widget.Price, Quantity: 2}, lines[0])

	line, err = service.RemoveFromCart(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	line, err = service.RemoveFromCart(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, line.Quantity)

	lines, err = service.ViewCart(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = service.RemoveFromCart(ctx, alice, 1)
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}

func TestService_AddToCart_ItemNotFound(t *testing.T) {
	catalog := new(MockInventoryRepository)
	publisher := new(MockEventPublisher)
	store, _ := setupMemoryStore()
	service := NewService(catalog, store, publisher, zap.NewNop())

	catalog.On("FindByID", mock.Anything, int64(42)).Return(nil, repository.ErrItemNotFound)

	item, _, err := service.AddToCart(context.Background(), alice, 42)
	assert.Nil(t, item)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	lines, err := store.Items(context.Background(), Key("alice", 1))
	require.NoError(t, err)
	assert.Empty(t, lines)

	catalog.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestService_AddToCart_StoreFailureReturnsItem(t *testing.T) {
	catalog := new(MockInventoryRepository)
	publisher := new(MockEventPublisher)
	storeErr := errors.New("connection refused")
	service := NewService(catalog, failingStore{err: storeErr}, publisher, zap.NewNop())

	catalog.On("FindByID", mock.Anything, int64(1)).Return(&widget, nil)

	item, _, err := service.AddToCart(context.Background(), alice, 1)
	assert.ErrorIs(t, err, storeErr)
	require.NotNil(t, item)
	assert.Equal(t, "Widget", item.Name)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestService_PublishesEvents(t *testing.T) {
	catalog := repository.NewInMemoryInventoryRepository(widget)
	publisher := new(MockEventPublisher)
	store, _ := setupMemoryStore()
	service := NewService(catalog, store, publisher, zap.NewNop())
	ctx := context.Background()

	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.CartItemAddedEvent) bool {
		return e.CartKey == "cart:alice_1" && e.ItemID == 1 && e.Quantity == 1 && e.UserID == 1
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.CartItemRemovedEvent) bool {
		return e.CartKey == "cart:alice_1" && e.ItemID == 1 && e.Quantity == 0
	})).Return(nil).Once()

	_, _, err := service.AddToCart(ctx, alice, 1)
	require.NoError(t, err)
	_, err = service.RemoveFromCart(ctx, alice, 1)
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}

func TestService_PublishFailureDoesNotFailRequest(t *testing.T) {
	catalog := repository.NewInMemoryInventoryRepository(widget)
	publisher := new(MockEventPublisher)
	store, _ := setupMemoryStore()
	service := NewService(catalog, store, publisher, zap.NewNop())

	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, line, err := service.AddToCart(context.Background(), alice, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	lines, err := service.ViewCart(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestService_CartsAreIsolated(t *testing.T) {
	catalog := repository.NewInMemoryInventoryRepository(widget)
	store, _ := setupMemoryStore()
	service := NewService(catalog, store, nil, zap.NewNop())
	ctx := context.Background()

	_, _, err := service.AddToCart(ctx, alice, 1)
	require.NoError(t, err)

	lines, err := service.ViewCart(ctx, auth.Identity{Subject: "bob", UserID: 2})
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = service.RemoveFromCart(ctx, auth.Identity{Subject: "bob", UserID: 2}, 1)
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}
