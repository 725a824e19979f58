package handlers

// StoreItemResponse is one entry of the storefront listing
// @Description Storefront item with display price
type StoreItemResponse struct {
	// Product name
	Name string `json:"name" example:"Widget"`

	// Price formatted for display
	Price string `json:"price" example:"$9.99"`

	// Whether the item can currently be bought
	InStock bool `json:"in_stock" example:"true"`
}

// CartLineItemResponse is one line of a cart
// @Description Cart line with the name and price captured when it was first added
type CartLineItemResponse struct {
	// Catalog item id
	ID int64 `json:"id" example:"1"`

	// Product name at add time
	Name string `json:"name" example:"Widget"`

	// Unit price at add time
	Price float64 `json:"price" example:"9.99"`

	// Units in the cart, always at least 1
	Quantity int `json:"quantity" example:"2"`
}

// MessageResponse confirms a cart mutation
// @Description Human readable confirmation
type MessageResponse struct {
	Message string `json:"message" example:"Item: Widget was added to cart!"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"cart-service"`
}
