package reviews

import "time"

// Review is a row in the reviews table.
type Review struct {
	ID        string    `dynamodbav:"id" json:"id"`
	ProductID string    `dynamodbav:"product_id" json:"product_id"`
	UserID    string    `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	SessionID string    `dynamodbav:"session_id" json:"session_id"`
	Rating    int       `dynamodbav:"rating" json:"rating"`
	Comment   string    `dynamodbav:"comment" json:"comment"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
}
