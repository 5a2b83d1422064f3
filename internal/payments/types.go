package payments

import (
	"context"
	"time"
)

// Payment status values mirrored on transaction rows.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// EventCheckoutCompleted is the provider event emitted when a hosted
// checkout session finishes successfully.
const EventCheckoutCompleted = "checkout.session.completed"

// Transaction is a row in the payment_transactions table, one per created
// checkout session.
type Transaction struct {
	ID              string         `dynamodbav:"id" json:"id"`
	SessionID       string         `dynamodbav:"session_id" json:"session_id"`
	UserID          string         `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	Amount          float64        `dynamodbav:"amount" json:"amount"`
	Currency        string         `dynamodbav:"currency" json:"currency"`
	PaymentStatus   string         `dynamodbav:"payment_status" json:"payment_status"`
	StripeSessionID string         `dynamodbav:"stripe_session_id" json:"stripe_session_id"`
	Metadata        map[string]any `dynamodbav:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt       time.Time      `dynamodbav:"created_at" json:"created_at"`
}

// CheckoutSessionRequest describes the hosted checkout session to create.
// Amount is in major currency units (dollars, not cents).
type CheckoutSessionRequest struct {
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the provider's handle for a created session.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutStatus is the provider's view of a session's progress.
type CheckoutStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// WebhookEvent is a verified provider notification.
type WebhookEvent struct {
	Type      string
	SessionID string
}

// Provider abstracts the hosted payment processor.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	CheckoutStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
