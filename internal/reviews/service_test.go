package reviews

import (
	"context"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *catalog.Store) {
	t.Helper()
	mock := testutil.NewDynamoMock()
	mock.Seed("products", catalog.Product{ID: "p1", Name: "Widget", Stock: 10, CreatedAt: time.Now().UTC()})
	products := catalog.NewStore(mock, "products")
	return NewService(NewStore(mock, "reviews"), products), products
}

func TestAdd_RecomputesRating(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "p1", 5, "great", "s1", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "p1", 4, "good", "s2", "u1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	p, err := products.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	// (5+4)/2 = 4.5
	if p.Rating != 4.5 {
		t.Fatalf("expected rating 4.5, got %v", p.Rating)
	}
	if p.ReviewsCount != 2 {
		t.Fatalf("expected 2 reviews, got %d", p.ReviewsCount)
	}
}

func TestAdd_RoundsToOneDecimal(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4} {
		if _, err := svc.Add(ctx, "p1", rating, "", "s1", ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	p, _ := products.Get(ctx, "p1")
	// 13/3 = 4.333... rounds to 4.3
	if p.Rating != 4.3 {
		t.Fatalf("expected rating 4.3, got %v", p.Rating)
	}
}

func TestAdd_InvalidRating(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Add(ctx, "p1", rating, "", "s1", ""); err != ErrInvalidRating {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	// nothing was stored
	p, _ := products.Get(ctx, "p1")
	if p.ReviewsCount != 0 {
		t.Fatalf("expected no reviews, got %d", p.ReviewsCount)
	}
}

func TestAdd_ProductNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Add(context.Background(), "missing", 4, "", "s1", ""); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	mock := testutil.NewDynamoMock()
	base := time.Now().UTC()
	mock.Seed("reviews", Review{ID: "r1", ProductID: "p1", Rating: 4, CreatedAt: base.Add(-time.Hour)})
	mock.Seed("reviews", Review{ID: "r2", ProductID: "p1", Rating: 5, CreatedAt: base})
	mock.Seed("reviews", Review{ID: "r3", ProductID: "p2", Rating: 3, CreatedAt: base})
	svc := NewService(NewStore(mock, "reviews"), catalog.NewStore(mock, "products"))

	list, err := svc.List(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(list))
	}
	if list[0].ID != "r2" || list[1].ID != "r1" {
		t.Fatalf("expected newest first (r2, r1), got (%s, %s)", list[0].ID, list[1].ID)
	}
}
