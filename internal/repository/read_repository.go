package repository

import (
	"context"
	"sort"
	"sync"

	"cart-service/internal/models"
)

// InventoryRepository defines the read operations the cart needs from the catalog
type InventoryRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
}

// ItemWriter upserts catalog rows; used to seed a catalog
type ItemWriter interface {
	SaveItem(ctx context.Context, item models.Item) error
}

// InMemoryInventoryRepository is used when no SQLite path is configured
type InMemoryInventoryRepository struct {
	mu    sync.RWMutex
	items map[int64]models.Item
}

func NewInMemoryInventoryRepository(items ...models.Item) *InMemoryInventoryRepository {
	repo := &InMemoryInventoryRepository{
		items: make(map[int64]models.Item, len(items)),
	}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *InMemoryInventoryRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *InMemoryInventoryRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

// SaveItem inserts or replaces an item
func (r *InMemoryInventoryRepository) SaveItem(ctx context.Context, item models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

var (
	ErrItemNotFound = &RepositoryError{Message: "item not found"}
)

type RepositoryError struct {
	Message string
}

func (e *RepositoryError) Error() string {
	return e.Message
}
