package cart

import (
	"time"

	"storefront/internal/catalog"
)

// Item is a single row in the cart_items table. Quantity for a given
// (session, product) pair lives in one row; re-adding bumps the quantity.
type Item struct {
	ID        string    `dynamodbav:"id" json:"id"`
	UserID    string    `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	SessionID string    `dynamodbav:"session_id" json:"session_id"`
	ProductID string    `dynamodbav:"product_id" json:"product_id"`
	Quantity  int       `dynamodbav:"quantity" json:"quantity"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Line is a cart item joined with its product.
type Line struct {
	Item
	Product   catalog.Product `json:"product"`
	ItemTotal float64         `json:"item_total"`
}

// View is the response shape for a cart fetch.
type View struct {
	Items       []Line  `json:"items"`
	TotalAmount float64 `json:"total_amount"`
	ItemsCount  int     `json:"items_count"`
}
