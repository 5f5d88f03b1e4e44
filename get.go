package dynamo

import (
	"encoding/json"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// GetItemRequest is a request to read a single item by its primary key.
// See: http://docs.aws.amazon.com/amazondynamodb/latest/APIReference/API_GetItem.html
type GetItemRequest struct {
	tableName string
	key       Item

	attributesToGet []string
	consistentRead  *bool
	returnCC        ReturnConsumedCapacity
	projection      string

	subber
	stickyErr
}

// NewGetItemRequest creates a new request to get the item with the given key from table.
func NewGetItemRequest(table string, key Item) *GetItemRequest {
	return (&GetItemRequest{}).WithTableName(table).WithKey(key)
}

// TableName returns the name of the table to read from.
func (r *GetItemRequest) TableName() string { return r.tableName }

// WithTableName sets the table to read from.
func (r *GetItemRequest) WithTableName(name string) *GetItemRequest {
	r.tableName = name
	return r
}

// Key returns a copy of the primary key.
func (r *GetItemRequest) Key() Item { return maps.Clone(r.key) }

// WithKey replaces the primary key with a copy of key.
func (r *GetItemRequest) WithKey(key Item) *GetItemRequest {
	r.key = maps.Clone(key)
	return r
}

// SetKeyEntries replaces the primary key with the given hash key and optional range key.
// A nil hash key records ErrNilHashKey.
func (r *GetItemRequest) SetKeyEntries(hash, rng *KeyEntry) *GetItemRequest {
	key, err := keyFromEntries(hash, rng)
	if err != nil {
		r.setError(err)
		return r
	}
	r.key = key
	return r
}

// AddKeyEntry adds one attribute to the primary key.
// Adding a name twice records ErrDuplicateKey and keeps the first value.
func (r *GetItemRequest) AddKeyEntry(name string, value AttributeValue) *GetItemRequest {
	r.setError(addEntry(&r.key, "Key", name, value))
	return r
}

// ClearKeyEntries removes the primary key.
func (r *GetItemRequest) ClearKeyEntries() *GetItemRequest {
	r.key = nil
	return r
}

// AttributesToGet returns a copy of the legacy attribute list.
func (r *GetItemRequest) AttributesToGet() []string { return cloneList(r.attributesToGet) }

// WithAttributesToGet appends names to the legacy attribute list.
func (r *GetItemRequest) WithAttributesToGet(names ...string) *GetItemRequest {
	if r.attributesToGet == nil {
		r.attributesToGet = make([]string, 0, len(names))
	}
	r.attributesToGet = append(r.attributesToGet, names...)
	return r
}

// SetAttributesToGet replaces the legacy attribute list with a copy of names.
// A nil slice unsets it.
func (r *GetItemRequest) SetAttributesToGet(names []string) *GetItemRequest {
	r.attributesToGet = cloneList(names)
	return r
}

// ConsistentRead returns the read consistency setting, or nil if unset.
func (r *GetItemRequest) ConsistentRead() *bool {
	if r.consistentRead == nil {
		return nil
	}
	on := *r.consistentRead
	return &on
}

// WithConsistentRead will, if on is true, make this read strongly consistent.
func (r *GetItemRequest) WithConsistentRead(on bool) *GetItemRequest {
	r.consistentRead = &on
	return r
}

// ReturnConsumedCapacity returns the capacity reporting level.
func (r *GetItemRequest) ReturnConsumedCapacity() ReturnConsumedCapacity { return r.returnCC }

// WithReturnConsumedCapacity sets the capacity reporting level.
func (r *GetItemRequest) WithReturnConsumedCapacity(v ReturnConsumedCapacity) *GetItemRequest {
	if err := checkEnum("ReturnConsumedCapacity", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnCC = v
	return r
}

// WithReturnConsumedCapacityString parses and sets the capacity reporting level.
func (r *GetItemRequest) WithReturnConsumedCapacityString(s string) *GetItemRequest {
	v, err := ParseReturnConsumedCapacity(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnConsumedCapacity(v)
}

// ProjectionExpression returns the projection expression.
func (r *GetItemRequest) ProjectionExpression() string { return r.projection }

// WithProjectionExpression limits the returned attributes.
// The expression is sent as-is.
func (r *GetItemRequest) WithProjectionExpression(expr string) *GetItemRequest {
	r.projection = expr
	return r
}

// ExpressionAttributeNames returns a copy of the name placeholders.
func (r *GetItemRequest) ExpressionAttributeNames() map[string]string { return r.names() }

// WithExpressionAttributeNames replaces the name placeholders with a copy of names.
func (r *GetItemRequest) WithExpressionAttributeNames(names map[string]string) *GetItemRequest {
	r.nameExpr = maps.Clone(names)
	return r
}

// AddExpressionAttributeNamesEntry adds one name placeholder, such as "#n" → "Name".
// Adding a placeholder twice records ErrDuplicateKey and keeps the first name.
func (r *GetItemRequest) AddExpressionAttributeNamesEntry(placeholder, name string) *GetItemRequest {
	r.setError(r.addName(placeholder, name))
	return r
}

// ClearExpressionAttributeNamesEntries removes all name placeholders.
func (r *GetItemRequest) ClearExpressionAttributeNamesEntries() *GetItemRequest {
	r.nameExpr = nil
	return r
}

// WithExpression copies the projection and name placeholders produced by an expression builder.
func (r *GetItemRequest) WithExpression(expr expression.Expression) *GetItemRequest {
	if p := expr.Projection(); p != nil {
		r.projection = *p
	}
	r.setError(r.merge(expr))
	return r
}

type getItemJSON struct {
	TableName                string                 `json:"TableName,omitempty"`
	Key                      Item                   `json:"Key,omitzero"`
	AttributesToGet          []string               `json:"AttributesToGet,omitzero"`
	ConsistentRead           *bool                  `json:"ConsistentRead,omitempty"`
	ReturnConsumedCapacity   ReturnConsumedCapacity `json:"ReturnConsumedCapacity,omitempty"`
	ProjectionExpression     string                 `json:"ProjectionExpression,omitempty"`
	ExpressionAttributeNames map[string]string      `json:"ExpressionAttributeNames,omitzero"`
}

// MarshalJSON encodes the request in the DynamoDB JSON protocol.
func (r *GetItemRequest) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return json.Marshal(getItemJSON{
		TableName:                r.tableName,
		Key:                      r.key,
		AttributesToGet:          r.attributesToGet,
		ConsistentRead:           r.consistentRead,
		ReturnConsumedCapacity:   r.returnCC,
		ProjectionExpression:     r.projection,
		ExpressionAttributeNames: r.nameExpr,
	})
}

// UnmarshalJSON decodes a request in the DynamoDB JSON protocol.
// A name repeated within a JSON object keeps its last value, unlike the Add*Entry methods.
func (r *GetItemRequest) UnmarshalJSON(data []byte) error {
	var w getItemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkEnum("ReturnConsumedCapacity", w.ReturnConsumedCapacity); err != nil {
		return err
	}
	*r = GetItemRequest{
		tableName:       w.TableName,
		key:             w.Key,
		attributesToGet: w.AttributesToGet,
		consistentRead:  w.ConsistentRead,
		returnCC:        w.ReturnConsumedCapacity,
		projection:      w.ProjectionExpression,
		subber:          subber{nameExpr: w.ExpressionAttributeNames},
	}
	return nil
}

func (r *GetItemRequest) input() *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName:                ptrOf(r.tableName),
		Key:                      r.key,
		AttributesToGet:          r.attributesToGet,
		ConsistentRead:           r.consistentRead,
		ReturnConsumedCapacity:   r.returnCC,
		ProjectionExpression:     ptrOf(r.projection),
		ExpressionAttributeNames: r.nameExpr,
	}
}

// GetItemResult is the response to a GetItemRequest.
type GetItemResult struct {
	item Item
	cc   *ConsumedCapacity
}

// Item returns a copy of the item read, or nil if no item matched the key.
func (r *GetItemResult) Item() Item { return maps.Clone(r.item) }

// WithItem sets the item and returns the result.
func (r *GetItemResult) WithItem(item Item) *GetItemResult {
	r.item = maps.Clone(item)
	return r
}

// ConsumedCapacity returns a copy of the capacity consumed, if it was requested.
func (r *GetItemResult) ConsumedCapacity() *ConsumedCapacity { return r.cc.clone() }

// WithConsumedCapacity sets the capacity consumed and returns the result.
func (r *GetItemResult) WithConsumedCapacity(cc *ConsumedCapacity) *GetItemResult {
	r.cc = cc.clone()
	return r
}

// Decode unmarshals the item into out, which must be a pointer.
// Returns ErrNotFound if no item matched the key.
func (r *GetItemResult) Decode(out any) error {
	if r.item == nil {
		return ErrNotFound
	}
	return UnmarshalItem(r.item, out)
}

type getItemResultJSON struct {
	Item             Item              `json:"Item,omitzero"`
	ConsumedCapacity *ConsumedCapacity `json:"ConsumedCapacity,omitempty"`
}

// MarshalJSON encodes the result in the DynamoDB JSON protocol.
func (r *GetItemResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(getItemResultJSON{Item: r.item, ConsumedCapacity: r.cc})
}

// UnmarshalJSON decodes a result in the DynamoDB JSON protocol.
func (r *GetItemResult) UnmarshalJSON(data []byte) error {
	var w getItemResultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = GetItemResult{item: w.Item, cc: w.ConsumedCapacity}
	return nil
}

func getItemResultFromSDK(out *dynamodb.GetItemOutput) *GetItemResult {
	return &GetItemResult{
		item: out.Item,
		cc:   consumedCapacityFromSDK(out.ConsumedCapacity),
	}
}
