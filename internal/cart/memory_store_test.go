package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupMemoryStore() (*InMemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewInMemoryStore(DefaultTTL)
	store.now = clock.Now
	return store, clock
}

func TestInMemoryStore_AddAndRemove(t *testing.T) {
	store, _ := setupMemoryStore()
	ctx := context.Background()
	key := Key("alice", 1)

	line, err := store.AddItem(ctx, key, widget)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	line, err = store.AddItem(ctx, key, widget)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	line, err = store.RemoveItem(ctx, key, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	line, err = store.RemoveItem(ctx, key, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, line.Quantity)

	_, err = store.RemoveItem(ctx, key, widget.ID)
	assert.ErrorIs(t, err, ErrLineItemNotFound)

	lines, err := store.Items(ctx, key)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestInMemoryStore_Expiry(t *testing.T) {
	store, clock := setupMemoryStore()
	ctx := context.Background()
	key := Key("alice", 1)

	_, err := store.AddItem(ctx, key, widget)
	require.NoError(t, err)

	// an add slides the window
	clock.Advance(23 * time.Hour)
	_, err = store.AddItem(ctx, key, widget)
	require.NoError(t, err)

	clock.Advance(23 * time.Hour)
	lines, err := store.Items(ctx, key)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// a remove does not
	_, err = store.RemoveItem(ctx, key, widget.ID)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	lines, err = store.Items(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = store.RemoveItem(ctx, key, widget.ID)
	assert.ErrorIs(t, err, ErrLineItemNotFound)

	line, err := store.AddItem(ctx, key, widget)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestInMemoryStore_ConcurrentAdds(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	ctx := context.Background()
	key := Key("bob", 2)

	const adds = 50
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddItem(ctx, key, widget)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := store.Items(ctx, key)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, adds, lines[0].Quantity)
}
