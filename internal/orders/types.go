package orders

import "time"

// Order status values.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Payment status values.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// OrderItem is a line captured at checkout time. Prices are snapshots; later
// catalog edits do not change past orders.
type OrderItem struct {
	ProductID string  `dynamodbav:"product_id" json:"product_id"`
	Name      string  `dynamodbav:"name" json:"name"`
	Price     float64 `dynamodbav:"price" json:"price"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	ItemTotal float64 `dynamodbav:"item_total" json:"item_total"`
}

// Order is a row in the orders table.
type Order struct {
	ID              string      `dynamodbav:"id" json:"id"`
	UserID          string      `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	SessionID       string      `dynamodbav:"session_id" json:"session_id"`
	Items           []OrderItem `dynamodbav:"items" json:"items"`
	TotalAmount     float64     `dynamodbav:"total_amount" json:"total_amount"`
	Status          string      `dynamodbav:"status" json:"status"`
	PaymentStatus   string      `dynamodbav:"payment_status" json:"payment_status"`
	StripeSessionID string      `dynamodbav:"stripe_session_id" json:"stripe_session_id"`
	CreatedAt       time.Time   `dynamodbav:"created_at" json:"created_at"`
}
