package catalog

import "time"

// Product is the catalog record. Rating and ReviewsCount are derived: the
// reviews service recomputes them whenever a review is appended. Stock is
// decremented by checkout reconciliation.
type Product struct {
	ID           string    `dynamodbav:"id" json:"id"`
	Name         string    `dynamodbav:"name" json:"name"`
	Description  string    `dynamodbav:"description" json:"description"`
	Price        float64   `dynamodbav:"price" json:"price"`
	Category     string    `dynamodbav:"category" json:"category"`
	ImageURL     string    `dynamodbav:"image_url" json:"image_url"`
	Stock        int       `dynamodbav:"stock" json:"stock"`
	Rating       float64   `dynamodbav:"rating" json:"rating"`
	ReviewsCount int       `dynamodbav:"reviews_count" json:"reviews_count"`
	CreatedAt    time.Time `dynamodbav:"created_at" json:"created_at"`
}
