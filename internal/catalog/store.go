package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"storefront/internal/aws"
)

// listLimit caps product listings; there is no pagination.
const listLimit = 100

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new products Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// List returns products, optionally filtered by exact category and by a
// case-insensitive substring match against name or description.
func (s *Store) List(ctx context.Context, category, search string) ([]Product, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}
	if category != "" {
		input.FilterExpression = awsString("category = :c")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: category},
		}
	}
	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	var products []Product
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &products); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}

	if search != "" {
		q := strings.ToLower(search)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if len(products) > listLimit {
		products = products[:listLimit]
	}
	return products, nil
}

// Categories returns the distinct category values, sorted.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName:            &s.tableName,
		ProjectionExpression: awsString("category"),
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}

	seen := map[string]struct{}{}
	categories := []string{}
	for _, item := range out.Items {
		v, ok := item["category"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		if _, dup := seen[v.Value]; dup {
			continue
		}
		seen[v.Value] = struct{}{}
		categories = append(categories, v.Value)
	}
	sort.Strings(categories)
	return categories, nil
}

// Count returns the number of products in the table.
func (s *Store) Count(ctx context.Context) (int, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.tableName,
		Select:    types.SelectCount,
	})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return int(out.Count), nil
}

// DecrementStock atomically subtracts qty from the product's stock counter.
// There is no floor guard: stock checks at cart-add and checkout time are
// advisory, and concurrent checkouts against the last units are an accepted
// race.
func (s *Store) DecrementStock(ctx context.Context, id string, qty int) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: awsString("ADD stock :delta"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(-qty)},
		},
	})
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

// SetRating persists a recomputed aggregate rating and review count.
func (s *Store) SetRating(ctx context.Context, id string, rating float64, count int) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: awsString("SET rating = :r, reviews_count = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": &types.AttributeValueMemberN{Value: strconv.FormatFloat(rating, 'f', -1, 64)},
			":c": &types.AttributeValueMemberN{Value: strconv.Itoa(count)},
		},
	})
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
