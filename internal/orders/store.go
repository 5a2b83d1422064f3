package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"storefront/internal/aws"
)

// ErrAlreadyPaid is returned by MarkPaid when the order was paid by an
// earlier call. Exactly one caller per order observes a nil error.
var ErrAlreadyPaid = errors.New("order already paid")

const (
	checkoutSessionIndex = "checkout-session-index"
	userIndex            = "user-index"
	sessionIndex         = "session-index"

	// historyLimit caps order history listings.
	historyLimit = 50
)

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// Create persists a new order.
func (s *Store) Create(ctx context.Context, o Order) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// ByCheckoutSession returns the order created for a Stripe checkout session,
// or (nil, nil) if none exists.
func (s *Store) ByCheckoutSession(ctx context.Context, stripeSessionID string) (*Order, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(checkoutSessionIndex),
		KeyConditionExpression: awsString("stripe_session_id = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: stripeSessionID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query order by checkout session: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Items[0], &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// MarkPaid flips the order to confirmed/paid. The write is conditional on
// payment_status still being pending, which makes it the single guard for
// payment side effects: a second caller gets ErrAlreadyPaid.
func (s *Store) MarkPaid(ctx context.Context, id string) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    awsString("SET #s = :confirmed, payment_status = :paid"),
		ConditionExpression: awsString("payment_status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":confirmed": &types.AttributeValueMemberS{Value: StatusConfirmed},
			":paid":      &types.AttributeValueMemberS{Value: PaymentStatusPaid},
			":pending":   &types.AttributeValueMemberS{Value: PaymentStatusPending},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrAlreadyPaid
		}
		return fmt.Errorf("mark order paid: %w", err)
	}
	return nil
}

// ListByUser returns a user's orders, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.list(ctx, userIndex, "user_id = :v", userID)
}

// ListBySession returns a guest session's orders, newest first.
func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]Order, error) {
	return s.list(ctx, sessionIndex, "session_id = :v", sessionID)
}

func (s *Store) list(ctx context.Context, index, keyCondition, value string) ([]Order, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(index),
		KeyConditionExpression: awsString(keyCondition),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	var list []Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &list); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if len(list) > historyLimit {
		list = list[:historyLimit]
	}
	return list, nil
}

func awsString(s string) *string { return &s }
