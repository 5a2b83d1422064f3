package payments

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"storefront/internal/aws"
)

const checkoutSessionIndex = "checkout-session-index"

// Store encapsulates operations on the payment_transactions table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new transactions Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// Create persists a new transaction.
func (s *Store) Create(ctx context.Context, tx Transaction) error {
	item, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put transaction: %w", err)
	}
	return nil
}

// ByCheckoutSession returns the transaction recorded for a Stripe checkout
// session, or (nil, nil) if none exists.
func (s *Store) ByCheckoutSession(ctx context.Context, stripeSessionID string) (*Transaction, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(checkoutSessionIndex),
		KeyConditionExpression: awsString("stripe_session_id = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: stripeSessionID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var tx Transaction
	if err := attributevalue.UnmarshalMap(out.Items[0], &tx); err != nil {
		return nil, fmt.Errorf("unmarshal transaction: %w", err)
	}
	return &tx, nil
}

// MarkPaid sets the transaction's payment_status to paid. Unlike order
// confirmation this is not conditional; transaction rows only mirror the
// provider's state.
func (s *Store) MarkPaid(ctx context.Context, id string) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: awsString("SET payment_status = :paid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":paid": &types.AttributeValueMemberS{Value: PaymentStatusPaid},
		},
	})
	if err != nil {
		return fmt.Errorf("mark transaction paid: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
