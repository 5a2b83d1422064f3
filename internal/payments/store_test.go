package payments

import (
	"context"
	"testing"
	"time"

	"storefront/internal/testutil"
)

func TestByCheckoutSession(t *testing.T) {
	mock := testutil.NewDynamoMock()
	store := NewStore(mock, "payment_transactions")
	ctx := context.Background()

	tx := Transaction{
		ID:              "t1",
		SessionID:       "s1",
		Amount:          399.98,
		Currency:        "usd",
		PaymentStatus:   PaymentStatusPending,
		StripeSessionID: "cs_1",
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.Create(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.ByCheckoutSession(ctx, "cs_1")
	if err != nil {
		t.Fatalf("by checkout session: %v", err)
	}
	if got == nil || got.ID != "t1" || got.Amount != 399.98 {
		t.Fatalf("unexpected transaction: %+v", got)
	}

	missing, err := store.ByCheckoutSession(ctx, "cs_other")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil transaction, got %+v", missing)
	}
}

func TestMarkPaid(t *testing.T) {
	mock := testutil.NewDynamoMock()
	store := NewStore(mock, "payment_transactions")
	ctx := context.Background()

	if err := store.Create(ctx, Transaction{ID: "t1", StripeSessionID: "cs_1", PaymentStatus: PaymentStatusPending}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.MarkPaid(ctx, "t1"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	got, err := store.ByCheckoutSession(ctx, "cs_1")
	if err != nil {
		t.Fatalf("by checkout session: %v", err)
	}
	if got.PaymentStatus != PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", got.PaymentStatus)
	}

	// marking again is a harmless overwrite
	if err := store.MarkPaid(ctx, "t1"); err != nil {
		t.Fatalf("second mark paid: %v", err)
	}
}
