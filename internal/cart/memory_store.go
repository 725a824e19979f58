package cart

import (
	"context"
	"sort"
	"sync"
	"time"

	"cart-service/internal/models"
)

// InMemoryStore is the fallback store used when Redis is unreachable at startup.
// A single mutex serializes all mutations.
type InMemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	carts map[string]*memoryCart
}

type memoryCart struct {
	lines     map[int64]models.CartLineItem
	expiresAt time.Time
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryStore{
		ttl:   ttl,
		now:   time.Now,
		carts: make(map[string]*memoryCart),
	}
}

// live returns the cart for key, dropping it once expired. Callers hold s.mu.
func (s *InMemoryStore) live(key string) *memoryCart {
	c, ok := s.carts[key]
	if !ok {
		return nil
	}
	if !s.now().Before(c.expiresAt) {
		delete(s.carts, key)
		return nil
	}
	return c
}

func (s *InMemoryStore) AddItem(ctx context.Context, key string, item models.Item) (models.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.live(key)
	if c == nil {
		c = &memoryCart{lines: make(map[int64]models.CartLineItem)}
		s.carts[key] = c
	}

	line, found := c.lines[item.ID]
	if found {
		line.Quantity++
	} else {
		line = models.NewCartLineItem(item)
	}
	c.lines[item.ID] = line
	c.expiresAt = s.now().Add(s.ttl)

	return line, nil
}

func (s *InMemoryStore) RemoveItem(ctx context.Context, key string, itemID int64) (models.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.live(key)
	if c == nil {
		return models.CartLineItem{}, ErrLineItemNotFound
	}
	line, found := c.lines[itemID]
	if !found {
		return models.CartLineItem{}, ErrLineItemNotFound
	}

	if line.Quantity > 1 {
		line.Quantity--
		c.lines[itemID] = line
		return line, nil
	}

	delete(c.lines, itemID)
	if len(c.lines) == 0 {
		delete(s.carts, key)
	}
	line.Quantity = 0
	return line, nil
}

func (s *InMemoryStore) Items(ctx context.Context, key string) ([]models.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.live(key)
	if c == nil {
		return []models.CartLineItem{}, nil
	}

	lines := make([]models.CartLineItem, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })

	return lines, nil
}
