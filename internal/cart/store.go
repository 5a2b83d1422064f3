package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"storefront/internal/aws"
)

// sessionIndex is the GSI keyed by session_id.
const sessionIndex = "session-index"

// Store encapsulates operations on the cart_items table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new cart Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// Put persists a cart item, overwriting any previous row with the same id.
func (s *Store) Put(ctx context.Context, item Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal cart item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put cart item: %w", err)
	}
	return nil
}

// Get fetches a cart item by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Item, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var item Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal cart item: %w", err)
	}
	return &item, nil
}

// Find returns the session's row for a product, or (nil, nil) when the
// product is not in the cart yet.
func (s *Store) Find(ctx context.Context, sessionID, productID string) (*Item, error) {
	items, err := s.BySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i], nil
		}
	}
	return nil, nil
}

// BySession returns every cart item belonging to a session.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]Item, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(sessionIndex),
		KeyConditionExpression: awsString("session_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: sessionID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	var items []Item
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return items, nil
}

// SetQuantity updates the quantity of an existing cart item.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: awsString("SET quantity = :q"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberN{Value: strconv.Itoa(quantity)},
		},
	})
	if err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	return nil
}

// Delete removes a cart item by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// DeleteSession removes every cart item belonging to a session.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	items, err := s.BySession(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.Delete(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func awsString(s string) *string { return &s }
