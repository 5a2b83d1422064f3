package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"storefront/internal/testutil"
)

func newStoreWithProducts(t *testing.T, products ...Product) (*Store, *testutil.DynamoMock) {
	t.Helper()
	mock := testutil.NewDynamoMock()
	for _, p := range products {
		mock.Seed("products", p)
	}
	return NewStore(mock, "products"), mock
}

func TestGet_NotFound(t *testing.T) {
	store, _ := newStoreWithProducts(t)

	p, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil product, got %+v", p)
	}
}

func TestList_CategoryAndSearch(t *testing.T) {
	now := time.Now().UTC()
	store, _ := newStoreWithProducts(t,
		Product{ID: "p1", Name: "Wireless Headphones", Description: "Noise cancellation", Price: 199.99, Category: "electronics", Stock: 50, CreatedAt: now},
		Product{ID: "p2", Name: "Casual Shirt", Description: "Everyday wear", Price: 34.99, Category: "clothing", Stock: 80, CreatedAt: now},
		Product{ID: "p3", Name: "Arduino Kit", Description: "Sensors and LED strips", Price: 89.99, Category: "electronics", Stock: 30, CreatedAt: now},
	)
	ctx := context.Background()

	all, err := store.List(ctx, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}

	electronics, err := store.List(ctx, "electronics", "")
	if err != nil {
		t.Fatalf("list category: %v", err)
	}
	if len(electronics) != 2 {
		t.Fatalf("expected 2 electronics, got %d", len(electronics))
	}

	// search is case-insensitive and matches descriptions too
	matched, err := store.List(ctx, "", "NOISE")
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "p1" {
		t.Fatalf("expected p1 for search NOISE, got %+v", matched)
	}

	none, err := store.List(ctx, "clothing", "arduino")
	if err != nil {
		t.Fatalf("list combined: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestCategories_Distinct(t *testing.T) {
	store, _ := newStoreWithProducts(t,
		Product{ID: "p1", Category: "electronics"},
		Product{ID: "p2", Category: "clothing"},
		Product{ID: "p3", Category: "electronics"},
	)

	categories, err := store.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", categories)
	}
	if categories[0] != "clothing" || categories[1] != "electronics" {
		t.Fatalf("expected sorted categories, got %v", categories)
	}
}

func TestDecrementStock(t *testing.T) {
	store, mock := newStoreWithProducts(t, Product{ID: "p1", Name: "Widget", Stock: 50})

	if err := store.DecrementStock(context.Background(), "p1", 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	item := mock.Item("products", "p1")
	stock, ok := item["stock"].(*types.AttributeValueMemberN)
	if !ok || stock.Value != "48" {
		t.Fatalf("expected stock 48, got %+v", item["stock"])
	}
}

func TestSetRating(t *testing.T) {
	store, mock := newStoreWithProducts(t, Product{ID: "p1", Name: "Widget"})

	if err := store.SetRating(context.Background(), "p1", 4.5, 2); err != nil {
		t.Fatalf("set rating: %v", err)
	}

	item := mock.Item("products", "p1")
	if r, ok := item["rating"].(*types.AttributeValueMemberN); !ok || r.Value != "4.5" {
		t.Fatalf("rating not persisted: %+v", item["rating"])
	}
	if c, ok := item["reviews_count"].(*types.AttributeValueMemberN); !ok || c.Value != "2" {
		t.Fatalf("reviews_count not persisted: %+v", item["reviews_count"])
	}
}

func TestSeedIfEmpty(t *testing.T) {
	mock := testutil.NewDynamoMock()
	store := NewStore(mock, "products")
	ctx := context.Background()

	seeded, err := store.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected initial seed to run")
	}
	if mock.Len("products") != len(sampleProducts) {
		t.Fatalf("expected %d products, got %d", len(sampleProducts), mock.Len("products"))
	}

	// second call is a no-op
	seeded, err = store.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if seeded {
		t.Fatal("expected second seed to be skipped")
	}
}
