package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/aws"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/orders"
	"storefront/internal/payments"
)

// CartStore is the slice of the cart store checkout needs.
type CartStore interface {
	BySession(ctx context.Context, sessionID string) ([]cart.Item, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// ProductStore is the slice of the catalog store checkout needs.
type ProductStore interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
}

// OrderStore is the slice of the orders store checkout needs.
type OrderStore interface {
	Create(ctx context.Context, o orders.Order) error
	ByCheckoutSession(ctx context.Context, stripeSessionID string) (*orders.Order, error)
	MarkPaid(ctx context.Context, id string) error
}

// TransactionStore is the slice of the payments store checkout needs.
type TransactionStore interface {
	Create(ctx context.Context, tx payments.Transaction) error
	ByCheckoutSession(ctx context.Context, stripeSessionID string) (*payments.Transaction, error)
	MarkPaid(ctx context.Context, id string) error
}

// EventPublisher emits downstream notifications for confirmed orders.
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, msg aws.OrderConfirmedMessage) error
}

// Redirect is the response for a created checkout session.
type Redirect struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// Service drives the checkout flow: session creation, payment status
// reconciliation, and webhook handling.
type Service struct {
	carts    CartStore
	products ProductStore
	orders   OrderStore
	txs      TransactionStore
	provider payments.Provider
	events   EventPublisher
	log      *zap.SugaredLogger
}

// NewService creates a checkout Service. events may be nil when no queue is
// configured.
func NewService(carts CartStore, products ProductStore, orderStore OrderStore, txStore TransactionStore, provider payments.Provider, events EventPublisher, log *zap.SugaredLogger) *Service {
	return &Service{
		carts:    carts,
		products: products,
		orders:   orderStore,
		txs:      txStore,
		provider: provider,
		events:   events,
		log:      log,
	}
}

// CreateSession validates the cart, opens a hosted checkout session, and
// records a pending transaction and order tied to it.
func (s *Service) CreateSession(ctx context.Context, sessionID, userID, baseURL string) (*Redirect, error) {
	items, err := s.carts.BySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var lines []orders.OrderItem
	var total float64
	for _, item := range items {
		p, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// product removed since it was added to the cart
			continue
		}
		if p.Stock < item.Quantity {
			return nil, &InsufficientStockError{ProductName: p.Name}
		}
		lineTotal := p.Price * float64(item.Quantity)
		lines = append(lines, orders.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  item.Quantity,
			ItemTotal: lineTotal,
		})
		total += lineTotal
	}
	if total <= 0 {
		return nil, ErrInvalidTotal
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, payments.CheckoutSessionRequest{
		Amount:     total,
		Currency:   "usd",
		SuccessURL: baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  baseURL + "/cart",
		Metadata: map[string]string{
			"session_id": sessionID,
			"user_id":    userID,
			"order_type": "cart_checkout",
		},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := payments.Transaction{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		UserID:          userID,
		Amount:          total,
		Currency:        "usd",
		PaymentStatus:   payments.PaymentStatusPending,
		StripeSessionID: sess.ID,
		Metadata:        map[string]any{"order_items": lines},
		CreatedAt:       now,
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		return nil, err
	}

	order := orders.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		SessionID:       sessionID,
		Items:           lines,
		TotalAmount:     total,
		Status:          orders.StatusPending,
		PaymentStatus:   orders.PaymentStatusPending,
		StripeSessionID: sess.ID,
		CreatedAt:       now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return &Redirect{URL: sess.URL, SessionID: sess.ID}, nil
}

// Status polls the provider for a checkout session and, on the first
// observation of a successful payment, settles the order: marks the
// transaction and order paid, decrements stock, clears the cart, and emits
// an order-confirmed event. The conditional order update makes the side
// effects run at most once even under concurrent polls.
func (s *Service) Status(ctx context.Context, stripeSessionID string) (*payments.CheckoutStatus, error) {
	st, err := s.provider.CheckoutStatus(ctx, stripeSessionID)
	if err != nil {
		return nil, err
	}

	tx, err := s.txs.ByCheckoutSession(ctx, stripeSessionID)
	if err != nil {
		return nil, err
	}
	if tx != nil && tx.PaymentStatus != payments.PaymentStatusPaid && st.PaymentStatus == payments.PaymentStatusPaid {
		if err := s.settle(ctx, tx, stripeSessionID); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (s *Service) settle(ctx context.Context, tx *payments.Transaction, stripeSessionID string) error {
	if err := s.txs.MarkPaid(ctx, tx.ID); err != nil {
		return err
	}

	order, err := s.orders.ByCheckoutSession(ctx, stripeSessionID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("no order for checkout session %s", stripeSessionID)
	}

	if err := s.orders.MarkPaid(ctx, order.ID); err != nil {
		if errors.Is(err, orders.ErrAlreadyPaid) {
			// another poll settled it; side effects already ran
			return nil
		}
		return err
	}

	for _, line := range order.Items {
		if err := s.products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	if err := s.carts.DeleteSession(ctx, order.SessionID); err != nil {
		return err
	}

	if s.events != nil {
		msg := aws.OrderConfirmedMessage{
			OrderID:         order.ID,
			SessionID:       order.SessionID,
			StripeSessionID: stripeSessionID,
			Amount:          order.TotalAmount,
			Currency:        tx.Currency,
		}
		if err := s.events.PublishOrderConfirmed(ctx, msg); err != nil {
			// the order is settled; a lost event only skips metrics
			s.log.Warnw("publish order confirmed failed", "order_id", order.ID, "error", err)
		}
	}
	return nil
}

// HandleWebhook verifies and applies a provider webhook. It only updates
// payment state; stock and cart cleanup stay on the polling path, which
// remains safe because order confirmation is conditional.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}
	event, err := s.provider.VerifyWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if event.Type != payments.EventCheckoutCompleted || event.SessionID == "" {
		return nil
	}

	tx, err := s.txs.ByCheckoutSession(ctx, event.SessionID)
	if err != nil {
		return err
	}
	if tx != nil && tx.PaymentStatus != payments.PaymentStatusPaid {
		if err := s.txs.MarkPaid(ctx, tx.ID); err != nil {
			return err
		}
	}

	order, err := s.orders.ByCheckoutSession(ctx, event.SessionID)
	if err != nil {
		return err
	}
	if order != nil {
		if err := s.orders.MarkPaid(ctx, order.ID); err != nil && !errors.Is(err, orders.ErrAlreadyPaid) {
			return err
		}
	}
	return nil
}
