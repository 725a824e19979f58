package models

import (
	"github.com/shopspring/decimal"
)

// Price is a decimal amount that encodes as a bare JSON number
type Price struct {
	decimal.Decimal
}

// NewPrice parses a decimal string such as "9.99"
func NewPrice(value string) (Price, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Price{}, err
	}
	return Price{Decimal: d}, nil
}

// MustPrice is like NewPrice but panics on malformed input
func MustPrice(value string) Price {
	return Price{Decimal: decimal.RequireFromString(value)}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// Display formats the price for storefront output, e.g. "$9.99"
func (p Price) Display() string {
	return "$" + p.Decimal.StringFixed(2)
}

// Item represents a catalog entry in the inventory store
type Item struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Price   Price  `json:"price"`
	InStock bool   `json:"in_stock"`
}

// CartLineItem is one entry of a user's cart. Name and Price are a snapshot
// taken when the item was first added.
type CartLineItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    Price  `json:"price"`
	Quantity int    `json:"quantity"`
}

// NewCartLineItem snapshots an item into a line with quantity 1
func NewCartLineItem(item Item) CartLineItem {
	return CartLineItem{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	}
}
