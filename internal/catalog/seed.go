package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// SeedIfEmpty loads the sample catalog when the products table has no rows.
// Returns true when seeding happened.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	writes := make([]types.WriteRequest, 0, len(sampleProducts))
	for _, p := range sampleProducts {
		p.ID = uuid.NewString()
		p.CreatedAt = time.Now().UTC()
		item, err := attributevalue.MarshalMap(p)
		if err != nil {
			return false, fmt.Errorf("marshal product: %w", err)
		}
		writes = append(writes, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	_, err = s.client.BatchWriteItem(ctx, &dyn.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			s.tableName: writes,
		},
	})
	if err != nil {
		return false, fmt.Errorf("batch write products: %w", err)
	}
	return true, nil
}

var sampleProducts = []Product{
	{
		Name:         "Wireless Headphones",
		Description:  "Premium wireless headphones with noise cancellation and 30-hour battery life.",
		Price:        199.99,
		Category:     "electronics",
		ImageURL:     "https://images.unsplash.com/photo-1498049794561-7780e7231661",
		Stock:        50,
		Rating:       4.5,
		ReviewsCount: 128,
	},
	{
		Name:         "Smart Arduino Kit",
		Description:  "Complete Arduino starter kit with sensors, LED strips, and programming guide.",
		Price:        89.99,
		Category:     "electronics",
		ImageURL:     "https://images.unsplash.com/photo-1603732551658-5fabbafa84eb",
		Stock:        30,
		Rating:       4.2,
		ReviewsCount: 89,
	},
	{
		Name:         "MacBook Pro 16\"",
		Description:  "Latest MacBook Pro with M3 chip, 16GB RAM, and 512GB SSD. Perfect for professionals.",
		Price:        2499.99,
		Category:     "electronics",
		ImageURL:     "https://images.unsplash.com/photo-1611186871348-b1ce696e52c9",
		Stock:        15,
		Rating:       4.8,
		ReviewsCount: 324,
	},
	{
		Name:         "Designer Dress Collection",
		Description:  "Elegant designer dress perfect for special occasions. Available in multiple colors and sizes.",
		Price:        159.99,
		Category:     "clothing",
		ImageURL:     "https://images.unsplash.com/photo-1441984904996-e0b6ba687e04",
		Stock:        40,
		Rating:       4.6,
		ReviewsCount: 156,
	},
	{
		Name:         "Summer Fashion Set",
		Description:  "Comfortable and stylish summer outfit set. Includes top, bottom, and accessories.",
		Price:        79.99,
		Category:     "clothing",
		ImageURL:     "https://images.unsplash.com/photo-1525507119028-ed4c629a60a3",
		Stock:        60,
		Rating:       4.3,
		ReviewsCount: 92,
	},
	{
		Name:         "Casual Shirt Collection",
		Description:  "High-quality casual shirts in various colors. Perfect for everyday wear.",
		Price:        34.99,
		Category:     "clothing",
		ImageURL:     "https://images.unsplash.com/photo-1489987707025-afc232f7ea0f",
		Stock:        80,
		Rating:       4.1,
		ReviewsCount: 67,
	},
	{
		Name:         "Bathroom Essentials Set",
		Description:  "Complete bathroom organizer set with premium quality containers and accessories.",
		Price:        49.99,
		Category:     "home_essentials",
		ImageURL:     "https://images.unsplash.com/photo-1691057185806-ea8b5b9a4506",
		Stock:        35,
		Rating:       4.4,
		ReviewsCount: 78,
	},
	{
		Name:         "Home Cleaning Kit",
		Description:  "Professional-grade cleaning supplies for a spotless home. Eco-friendly and effective.",
		Price:        29.99,
		Category:     "home_essentials",
		ImageURL:     "https://images.unsplash.com/photo-1528740561666-dc2479dc08ab",
		Stock:        70,
		Rating:       4.2,
		ReviewsCount: 103,
	},
	{
		Name:         "Home Office Setup",
		Description:  "Complete home office essentials including desk organizers, lighting, and accessories.",
		Price:        199.99,
		Category:     "home_essentials",
		ImageURL:     "https://images.unsplash.com/photo-1622992412846-99541b8e89b2",
		Stock:        25,
		Rating:       4.7,
		ReviewsCount: 145,
	},
}
