// Package cart keeps per-user shopping carts in a key-value store.
//
// A cart is a hash at Key(subject, userID) mapping item ids to JSON line items.
// Every add resets the expiry of the whole cart; removals leave it alone.
package cart

import (
	"context"
	"errors"
	"strconv"
	"time"

	"cart-service/internal/models"
)

// DefaultTTL is the inactivity expiry applied on every add
const DefaultTTL = 24 * time.Hour

var (
	// ErrLineItemNotFound is returned when removing an item that is not in the cart
	ErrLineItemNotFound = errors.New("line item not found")
	// ErrCartConflict is returned when concurrent writers kept invalidating the transaction
	ErrCartConflict = errors.New("cart modified concurrently")
	// ErrCorruptLineItem is returned when a stored line cannot be decoded
	ErrCorruptLineItem = errors.New("corrupt line item")
)

// Key derives the cache key of a user's cart. The numeric user id never
// contains '_', so the last separator is unambiguous.
func Key(subject string, userID int64) string {
	return "cart:" + subject + "_" + strconv.FormatInt(userID, 10)
}

// Store is the cart storage. Implementations must make each mutation atomic
// with respect to concurrent mutations of the same cart.
type Store interface {
	// AddItem increments the line for item, creating it with quantity 1 from the
	// item snapshot when absent, and resets the cart expiry.
	AddItem(ctx context.Context, key string, item models.Item) (models.CartLineItem, error)
	// RemoveItem decrements the line for itemID and deletes it when it reaches
	// zero. The returned line carries the remaining quantity.
	RemoveItem(ctx context.Context, key string, itemID int64) (models.CartLineItem, error)
	// Items returns every line of the cart ordered by item id.
	Items(ctx context.Context, key string) ([]models.CartLineItem, error)
}

func field(itemID int64) string {
	return strconv.FormatInt(itemID, 10)
}
