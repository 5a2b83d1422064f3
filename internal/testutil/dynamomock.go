// Package testutil provides an in-memory DynamoDB stand-in for unit tests.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMock implements aws.DynamoDBAPI over in-memory tables. It covers the
// expression shapes the storefront stores issue; it is not a general DynamoDB
// emulator. All tables are keyed by the "id" attribute, matching the store
// schemas.
type DynamoMock struct {
	mu     sync.Mutex
	tables map[string]*table
}

type table struct {
	keys  []string // preserves insertion order for deterministic scans
	items map[string]map[string]types.AttributeValue
}

func NewDynamoMock() *DynamoMock {
	return &DynamoMock{tables: map[string]*table{}}
}

func (m *DynamoMock) ensure(name string) *table {
	t, ok := m.tables[name]
	if !ok {
		t = &table{items: map[string]map[string]types.AttributeValue{}}
		m.tables[name] = t
	}
	return t
}

// Seed marshals v and inserts it. Test setup only; panics on marshal failure.
func (m *DynamoMock) Seed(tableName string, v interface{}) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(tableName).put(item)
}

// Item returns the raw stored item for assertions, or nil.
func (m *DynamoMock) Item(tableName, id string) map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensure(tableName).items[id]
}

// Len returns the number of items in a table.
func (m *DynamoMock) Len(tableName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ensure(tableName).items)
}

func (t *table) put(item map[string]types.AttributeValue) {
	pk := stringAttr(item, "id")
	if _, exists := t.items[pk]; !exists {
		t.keys = append(t.keys, pk)
	}
	t.items[pk] = item
}

func (t *table) delete(pk string) {
	if _, exists := t.items[pk]; !exists {
		return
	}
	delete(t.items, pk)
	for i, k := range t.keys {
		if k == pk {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func keyID(key map[string]types.AttributeValue) (string, error) {
	v, ok := key["id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("mock: key must contain string attribute id")
	}
	return v.Value, nil
}

// resolveName maps a possibly #-aliased attribute name to its real name.
func resolveName(name string, names map[string]string) string {
	if strings.HasPrefix(name, "#") {
		return names[name]
	}
	return name
}

// checkCondition evaluates the two condition forms the stores use:
// "attribute_not_exists(attr)" and "attr = :val".
func (t *table) checkCondition(expr string, pk string, names map[string]string, values map[string]types.AttributeValue) error {
	if strings.HasPrefix(expr, "attribute_not_exists(") {
		if _, exists := t.items[pk]; exists {
			return &types.ConditionalCheckFailedException{}
		}
		return nil
	}
	parts := strings.SplitN(expr, " = ", 2)
	if len(parts) != 2 {
		return errors.New("mock: unsupported condition expression: " + expr)
	}
	item, exists := t.items[pk]
	if !exists {
		return &types.ConditionalCheckFailedException{}
	}
	attr := resolveName(strings.TrimSpace(parts[0]), names)
	want, ok := values[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS)
	if !ok {
		return errors.New("mock: condition value must be a string")
	}
	if stringAttr(item, attr) != want.Value {
		return &types.ConditionalCheckFailedException{}
	}
	return nil
}

func (m *DynamoMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.ensure(*params.TableName)
	pk := stringAttr(params.Item, "id")
	if pk == "" {
		return nil, errors.New("mock: item must contain string attribute id")
	}
	if params.ConditionExpression != nil {
		if err := t.checkCondition(*params.ConditionExpression, pk, params.ExpressionAttributeNames, params.ExpressionAttributeValues); err != nil {
			return nil, err
		}
	}
	t.put(params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (m *DynamoMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pk, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.ensure(*params.TableName).items[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *DynamoMock) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pk, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	m.ensure(*params.TableName).delete(pk)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *DynamoMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.ensure(*params.TableName)
	pk, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil {
		if err := t.checkCondition(*params.ConditionExpression, pk, params.ExpressionAttributeNames, params.ExpressionAttributeValues); err != nil {
			return nil, err
		}
	}
	item, exists := t.items[pk]
	if !exists {
		item = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: pk},
		}
	}
	if err := applyUpdate(item, *params.UpdateExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues); err != nil {
		return nil, err
	}
	t.put(item)
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

// applyUpdate handles "SET a = :x, b = :y" and "ADD a :x" expressions.
func applyUpdate(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) error {
	switch {
	case strings.HasPrefix(expr, "SET "):
		for _, clause := range strings.Split(strings.TrimPrefix(expr, "SET "), ", ") {
			parts := strings.SplitN(clause, " = ", 2)
			if len(parts) != 2 {
				return errors.New("mock: unsupported SET clause: " + clause)
			}
			attr := resolveName(strings.TrimSpace(parts[0]), names)
			item[attr] = values[strings.TrimSpace(parts[1])]
		}
	case strings.HasPrefix(expr, "ADD "):
		fields := strings.Fields(strings.TrimPrefix(expr, "ADD "))
		if len(fields) != 2 {
			return errors.New("mock: unsupported ADD clause: " + expr)
		}
		attr := resolveName(fields[0], names)
		delta, ok := values[fields[1]].(*types.AttributeValueMemberN)
		if !ok {
			return errors.New("mock: ADD value must be numeric")
		}
		current := 0.0
		if cur, ok := item[attr].(*types.AttributeValueMemberN); ok {
			current, _ = strconv.ParseFloat(cur.Value, 64)
		}
		d, err := strconv.ParseFloat(delta.Value, 64)
		if err != nil {
			return err
		}
		item[attr] = &types.AttributeValueMemberN{Value: strconv.FormatFloat(current+d, 'f', -1, 64)}
	default:
		return errors.New("mock: unsupported update expression: " + expr)
	}
	return nil
}

// Query matches items by attribute equality, which is what the stores' GSI
// queries come down to. IndexName is accepted but not interpreted.
func (m *DynamoMock) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.ensure(*params.TableName)
	parts := strings.SplitN(*params.KeyConditionExpression, " = ", 2)
	if len(parts) != 2 {
		return nil, errors.New("mock: unsupported key condition: " + *params.KeyConditionExpression)
	}
	attr := resolveName(strings.TrimSpace(parts[0]), params.ExpressionAttributeNames)
	want, ok := params.ExpressionAttributeValues[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("mock: key condition value must be a string")
	}
	out := &dyn.QueryOutput{}
	for _, pk := range t.keys {
		item := t.items[pk]
		if stringAttr(item, attr) == want.Value {
			out.Items = append(out.Items, item)
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (m *DynamoMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.ensure(*params.TableName)

	var attr string
	var want *types.AttributeValueMemberS
	if params.FilterExpression != nil {
		parts := strings.SplitN(*params.FilterExpression, " = ", 2)
		if len(parts) != 2 {
			return nil, errors.New("mock: unsupported filter expression: " + *params.FilterExpression)
		}
		attr = resolveName(strings.TrimSpace(parts[0]), params.ExpressionAttributeNames)
		var ok bool
		want, ok = params.ExpressionAttributeValues[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS)
		if !ok {
			return nil, errors.New("mock: filter value must be a string")
		}
	}

	out := &dyn.ScanOutput{}
	for _, pk := range t.keys {
		item := t.items[pk]
		if want != nil && stringAttr(item, attr) != want.Value {
			continue
		}
		out.Count++
		if params.Select != types.SelectCount {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (m *DynamoMock) BatchWriteItem(ctx context.Context, params *dyn.BatchWriteItemInput, optFns ...func(*dyn.Options)) (*dyn.BatchWriteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for tableName, writes := range params.RequestItems {
		t := m.ensure(tableName)
		for _, w := range writes {
			if w.PutRequest != nil {
				t.put(w.PutRequest.Item)
			}
		}
	}
	return &dyn.BatchWriteItemOutput{}, nil
}
