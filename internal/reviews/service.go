package reviews

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"storefront/internal/catalog"
)

var (
	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrProductNotFound is returned when reviewing a product that does
	// not exist.
	ErrProductNotFound = errors.New("product not found")
)

// listLimit caps review listings.
const listLimit = 100

// ProductCatalog is the slice of the catalog store reviews need.
type ProductCatalog interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
	SetRating(ctx context.Context, id string, rating float64, count int) error
}

// Service adds reviews and keeps the product's aggregate rating current.
type Service struct {
	reviews  *Store
	products ProductCatalog
}

// NewService creates a reviews Service.
func NewService(reviews *Store, products ProductCatalog) *Service {
	return &Service{reviews: reviews, products: products}
}

// Add validates and stores a review, then recomputes the product's average
// rating over all of its reviews.
func (s *Service) Add(ctx context.Context, productID string, rating int, comment, sessionID, userID string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	r := Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		SessionID: sessionID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}

	all, err := s.reviews.ByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	var sum int
	for _, rv := range all {
		sum += rv.Rating
	}
	avg := math.Round(float64(sum)/float64(len(all))*10) / 10
	if err := s.products.SetRating(ctx, productID, avg, len(all)); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns a product's reviews, newest first, capped at 100.
func (s *Service) List(ctx context.Context, productID string) ([]Review, error) {
	list, err := s.reviews.ByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(list) > listLimit {
		list = list[:listLimit]
	}
	return list, nil
}
