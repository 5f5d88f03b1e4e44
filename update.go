package dynamo

import (
	"encoding/json"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// UpdateItemRequest is a request to modify the attributes of an item, creating it if it does not exist.
// See: http://docs.aws.amazon.com/amazondynamodb/latest/APIReference/API_UpdateItem.html
type UpdateItemRequest struct {
	tableName string
	key       Item

	attributeUpdates map[string]AttributeValueUpdate
	update           string

	expected   map[string]ExpectedAttributeValue
	condOp     ConditionalOperator
	returnType ReturnValue
	returnCC   ReturnConsumedCapacity
	returnICM  ReturnItemCollectionMetrics
	onCondFail ReturnValuesOnConditionCheckFailure

	subber
	condition string

	stickyErr
}

// NewUpdateItemRequest creates a new request to modify the item with the given key in table.
func NewUpdateItemRequest(table string, key Item) *UpdateItemRequest {
	return (&UpdateItemRequest{}).WithTableName(table).WithKey(key)
}

// TableName returns the name of the table to write to.
func (r *UpdateItemRequest) TableName() string { return r.tableName }

// WithTableName sets the table to write to.
func (r *UpdateItemRequest) WithTableName(name string) *UpdateItemRequest {
	r.tableName = name
	return r
}

// Key returns a copy of the primary key.
func (r *UpdateItemRequest) Key() Item { return maps.Clone(r.key) }

// WithKey replaces the primary key with a copy of key.
func (r *UpdateItemRequest) WithKey(key Item) *UpdateItemRequest {
	r.key = maps.Clone(key)
	return r
}

// SetKeyEntries replaces the primary key with the given hash key and optional range key.
// A nil hash key records ErrNilHashKey.
func (r *UpdateItemRequest) SetKeyEntries(hash, rng *KeyEntry) *UpdateItemRequest {
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
func (r *UpdateItemRequest) AddKeyEntry(name string, value AttributeValue) *UpdateItemRequest {
	r.setError(addEntry(&r.key, "Key", name, value))
	return r
}

// ClearKeyEntries removes the primary key.
func (r *UpdateItemRequest) ClearKeyEntries() *UpdateItemRequest {
	r.key = nil
	return r
}

// AttributeUpdates returns a copy of the legacy per-attribute updates.
func (r *UpdateItemRequest) AttributeUpdates() map[string]AttributeValueUpdate {
	return maps.Clone(r.attributeUpdates)
}

// WithAttributeUpdates replaces the legacy per-attribute updates with a copy of updates.
func (r *UpdateItemRequest) WithAttributeUpdates(updates map[string]AttributeValueUpdate) *UpdateItemRequest {
	if err := checkEntries(updates); err != nil {
		r.setError(err)
		return r
	}
	r.attributeUpdates = maps.Clone(updates)
	return r
}

// AddAttributeUpdatesEntry adds a legacy update instruction for one attribute.
// Adding a name twice records ErrDuplicateKey and keeps the first instruction.
func (r *UpdateItemRequest) AddAttributeUpdatesEntry(name string, update AttributeValueUpdate) *UpdateItemRequest {
	if err := update.check(); err != nil {
		r.setError(err)
		return r
	}
	r.setError(addEntry(&r.attributeUpdates, "AttributeUpdates", name, update))
	return r
}

// ClearAttributeUpdatesEntries removes all legacy per-attribute updates.
func (r *UpdateItemRequest) ClearAttributeUpdatesEntries() *UpdateItemRequest {
	r.attributeUpdates = nil
	return r
}

// UpdateExpression returns the update expression.
func (r *UpdateItemRequest) UpdateExpression() string { return r.update }

// WithUpdateExpression sets the update expression, such as "SET #n = :v REMOVE Stale".
// The expression is sent as-is.
func (r *UpdateItemRequest) WithUpdateExpression(expr string) *UpdateItemRequest {
	r.update = expr
	return r
}

// Expected returns a copy of the legacy conditions.
func (r *UpdateItemRequest) Expected() map[string]ExpectedAttributeValue { return maps.Clone(r.expected) }

// WithExpected replaces the legacy conditions with a copy of expected.
func (r *UpdateItemRequest) WithExpected(expected map[string]ExpectedAttributeValue) *UpdateItemRequest {
	if err := checkEntries(expected); err != nil {
		r.setError(err)
		return r
	}
	r.expected = maps.Clone(expected)
	return r
}

// AddExpectedEntry adds a legacy condition on one attribute.
// Adding a name twice records ErrDuplicateKey and keeps the first condition.
func (r *UpdateItemRequest) AddExpectedEntry(name string, cond ExpectedAttributeValue) *UpdateItemRequest {
	if err := cond.check(); err != nil {
		r.setError(err)
		return r
	}
	r.setError(addEntry(&r.expected, "Expected", name, cond))
	return r
}

// ClearExpectedEntries removes all legacy conditions.
func (r *UpdateItemRequest) ClearExpectedEntries() *UpdateItemRequest {
	r.expected = nil
	return r
}

// ConditionalOperator returns the operator joining the legacy conditions.
func (r *UpdateItemRequest) ConditionalOperator() ConditionalOperator { return r.condOp }

// WithConditionalOperator sets the operator joining the legacy conditions.
func (r *UpdateItemRequest) WithConditionalOperator(op ConditionalOperator) *UpdateItemRequest {
	if err := checkEnum("ConditionalOperator", op); err != nil {
		r.setError(err)
		return r
	}
	r.condOp = op
	return r
}

// WithConditionalOperatorString parses and sets the operator joining the legacy conditions.
func (r *UpdateItemRequest) WithConditionalOperatorString(s string) *UpdateItemRequest {
	op, err := ParseConditionalOperator(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithConditionalOperator(op)
}

// ReturnValues returns which version of the item the response will carry.
func (r *UpdateItemRequest) ReturnValues() ReturnValue { return r.returnType }

// WithReturnValues sets which version of the item the response will carry.
// UpdateItem accepts all five literals.
func (r *UpdateItemRequest) WithReturnValues(v ReturnValue) *UpdateItemRequest {
	if err := checkEnum("ReturnValues", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnType = v
	return r
}

// WithReturnValuesString parses and sets which version of the item the response will carry.
func (r *UpdateItemRequest) WithReturnValuesString(s string) *UpdateItemRequest {
	v, err := ParseReturnValue(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnValues(v)
}

// ReturnConsumedCapacity returns the capacity reporting level.
func (r *UpdateItemRequest) ReturnConsumedCapacity() ReturnConsumedCapacity { return r.returnCC }

// WithReturnConsumedCapacity sets the capacity reporting level.
func (r *UpdateItemRequest) WithReturnConsumedCapacity(v ReturnConsumedCapacity) *UpdateItemRequest {
	if err := checkEnum("ReturnConsumedCapacity", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnCC = v
	return r
}

// WithReturnConsumedCapacityString parses and sets the capacity reporting level.
func (r *UpdateItemRequest) WithReturnConsumedCapacityString(s string) *UpdateItemRequest {
	v, err := ParseReturnConsumedCapacity(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnConsumedCapacity(v)
}

// ReturnItemCollectionMetrics returns whether item collection metrics are requested.
func (r *UpdateItemRequest) ReturnItemCollectionMetrics() ReturnItemCollectionMetrics {
	return r.returnICM
}

// WithReturnItemCollectionMetrics sets whether item collection metrics are requested.
func (r *UpdateItemRequest) WithReturnItemCollectionMetrics(v ReturnItemCollectionMetrics) *UpdateItemRequest {
	if err := checkEnum("ReturnItemCollectionMetrics", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnICM = v
	return r
}

// WithReturnItemCollectionMetricsString parses and sets whether item collection metrics are requested.
func (r *UpdateItemRequest) WithReturnItemCollectionMetricsString(s string) *UpdateItemRequest {
	v, err := ParseReturnItemCollectionMetrics(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnItemCollectionMetrics(v)
}

// ReturnValuesOnConditionCheckFailure returns whether a failed condition returns the current item.
func (r *UpdateItemRequest) ReturnValuesOnConditionCheckFailure() ReturnValuesOnConditionCheckFailure {
	return r.onCondFail
}

// WithReturnValuesOnConditionCheckFailure sets whether a failed condition returns the current item.
func (r *UpdateItemRequest) WithReturnValuesOnConditionCheckFailure(v ReturnValuesOnConditionCheckFailure) *UpdateItemRequest {
	if err := checkEnum("ReturnValuesOnConditionCheckFailure", v); err != nil {
		r.setError(err)
		return r
	}
	r.onCondFail = v
	return r
}

// WithReturnValuesOnConditionCheckFailureString parses and sets whether a failed condition returns the current item.
func (r *UpdateItemRequest) WithReturnValuesOnConditionCheckFailureString(s string) *UpdateItemRequest {
	v, err := ParseReturnValuesOnConditionCheckFailure(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnValuesOnConditionCheckFailure(v)
}

// ConditionExpression returns the condition expression.
func (r *UpdateItemRequest) ConditionExpression() string { return r.condition }

// WithConditionExpression sets a condition for this update to succeed.
// The expression is sent as-is.
func (r *UpdateItemRequest) WithConditionExpression(expr string) *UpdateItemRequest {
	r.condition = expr
	return r
}

// ExpressionAttributeNames returns a copy of the name placeholders.
func (r *UpdateItemRequest) ExpressionAttributeNames() map[string]string { return r.names() }

// WithExpressionAttributeNames replaces the name placeholders with a copy of names.
func (r *UpdateItemRequest) WithExpressionAttributeNames(names map[string]string) *UpdateItemRequest {
	r.nameExpr = maps.Clone(names)
	return r
}

// AddExpressionAttributeNamesEntry adds one name placeholder, such as "#n" → "Name".
// Adding a placeholder twice records ErrDuplicateKey and keeps the first name.
func (r *UpdateItemRequest) AddExpressionAttributeNamesEntry(placeholder, name string) *UpdateItemRequest {
	r.setError(r.addName(placeholder, name))
	return r
}

// ClearExpressionAttributeNamesEntries removes all name placeholders.
func (r *UpdateItemRequest) ClearExpressionAttributeNamesEntries() *UpdateItemRequest {
	r.nameExpr = nil
	return r
}

// ExpressionAttributeValues returns a copy of the value placeholders.
func (r *UpdateItemRequest) ExpressionAttributeValues() Item { return r.values() }

// WithExpressionAttributeValues replaces the value placeholders with a copy of values.
func (r *UpdateItemRequest) WithExpressionAttributeValues(values Item) *UpdateItemRequest {
	r.valueExpr = maps.Clone(values)
	return r
}

// AddExpressionAttributeValuesEntry adds one value placeholder, such as ":v" → 42.
// Adding a placeholder twice records ErrDuplicateKey and keeps the first value.
func (r *UpdateItemRequest) AddExpressionAttributeValuesEntry(placeholder string, value AttributeValue) *UpdateItemRequest {
	r.setError(r.addValue(placeholder, value))
	return r
}

// ClearExpressionAttributeValuesEntries removes all value placeholders.
func (r *UpdateItemRequest) ClearExpressionAttributeValuesEntries() *UpdateItemRequest {
	r.valueExpr = nil
	return r
}

// WithExpression copies the update, condition and placeholders produced by an expression builder.
func (r *UpdateItemRequest) WithExpression(expr expression.Expression) *UpdateItemRequest {
	if u := expr.Update(); u != nil {
		r.update = *u
	}
	if c := expr.Condition(); c != nil {
		r.condition = *c
	}
	r.setError(r.merge(expr))
	return r
}

type updateItemJSON struct {
	TableName                           string                              `json:"TableName,omitempty"`
	Key                                 Item                                `json:"Key,omitzero"`
	AttributeUpdates                    map[string]AttributeValueUpdate     `json:"AttributeUpdates,omitzero"`
	UpdateExpression                    string                              `json:"UpdateExpression,omitempty"`
	Expected                            map[string]ExpectedAttributeValue   `json:"Expected,omitzero"`
	ConditionalOperator                 ConditionalOperator                 `json:"ConditionalOperator,omitempty"`
	ReturnValues                        ReturnValue                         `json:"ReturnValues,omitempty"`
	ReturnConsumedCapacity              ReturnConsumedCapacity              `json:"ReturnConsumedCapacity,omitempty"`
	ReturnItemCollectionMetrics         ReturnItemCollectionMetrics         `json:"ReturnItemCollectionMetrics,omitempty"`
	ReturnValuesOnConditionCheckFailure ReturnValuesOnConditionCheckFailure `json:"ReturnValuesOnConditionCheckFailure,omitempty"`
	ConditionExpression                 string                              `json:"ConditionExpression,omitempty"`
	ExpressionAttributeNames            map[string]string                   `json:"ExpressionAttributeNames,omitzero"`
	ExpressionAttributeValues           Item                                `json:"ExpressionAttributeValues,omitzero"`
}

// MarshalJSON encodes the request in the DynamoDB JSON protocol.
func (r *UpdateItemRequest) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return json.Marshal(updateItemJSON{
		TableName:                           r.tableName,
		Key:                                 r.key,
		AttributeUpdates:                    r.attributeUpdates,
		UpdateExpression:                    r.update,
		Expected:                            r.expected,
		ConditionalOperator:                 r.condOp,
		ReturnValues:                        r.returnType,
		ReturnConsumedCapacity:              r.returnCC,
		ReturnItemCollectionMetrics:         r.returnICM,
		ReturnValuesOnConditionCheckFailure: r.onCondFail,
		ConditionExpression:                 r.condition,
		ExpressionAttributeNames:            r.nameExpr,
		ExpressionAttributeValues:           r.valueExpr,
	})
}

// UnmarshalJSON decodes a request in the DynamoDB JSON protocol.
// A name repeated within a JSON object keeps its last value, unlike the Add*Entry methods.
func (r *UpdateItemRequest) UnmarshalJSON(data []byte) error {
	var w updateItemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkWriteEnums(w.ConditionalOperator, w.ReturnValues, w.ReturnConsumedCapacity,
		w.ReturnItemCollectionMetrics, w.ReturnValuesOnConditionCheckFailure); err != nil {
		return err
	}
	*r = UpdateItemRequest{
		tableName:        w.TableName,
		key:              w.Key,
		attributeUpdates: w.AttributeUpdates,
		update:           w.UpdateExpression,
		expected:         w.Expected,
		condOp:           w.ConditionalOperator,
		returnType:       w.ReturnValues,
		returnCC:         w.ReturnConsumedCapacity,
		returnICM:        w.ReturnItemCollectionMetrics,
		onCondFail:       w.ReturnValuesOnConditionCheckFailure,
		subber:           subber{nameExpr: w.ExpressionAttributeNames, valueExpr: w.ExpressionAttributeValues},
		condition:        w.ConditionExpression,
	}
	return nil
}

func (r *UpdateItemRequest) input() *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName:                           ptrOf(r.tableName),
		Key:                                 r.key,
		AttributeUpdates:                    sdkMap(r.attributeUpdates, AttributeValueUpdate.sdk),
		UpdateExpression:                    ptrOf(r.update),
		Expected:                            sdkMap(r.expected, ExpectedAttributeValue.sdk),
		ConditionalOperator:                 r.condOp,
		ReturnValues:                        r.returnType,
		ReturnConsumedCapacity:              r.returnCC,
		ReturnItemCollectionMetrics:         r.returnICM,
		ReturnValuesOnConditionCheckFailure: r.onCondFail,
		ConditionExpression:                 ptrOf(r.condition),
		ExpressionAttributeNames:            r.nameExpr,
		ExpressionAttributeValues:           r.valueExpr,
	}
}

// UpdateItemResult is the response to an UpdateItemRequest.
type UpdateItemResult struct {
	writeResult
}

// WithAttributes sets the returned attributes and returns the result.
func (r *UpdateItemResult) WithAttributes(item Item) *UpdateItemResult {
	r.attributes = maps.Clone(item)
	return r
}

// WithConsumedCapacity sets the capacity consumed and returns the result.
func (r *UpdateItemResult) WithConsumedCapacity(cc *ConsumedCapacity) *UpdateItemResult {
	r.cc = cc.clone()
	return r
}

// WithItemCollectionMetrics sets the item collection metrics and returns the result.
func (r *UpdateItemResult) WithItemCollectionMetrics(m *ItemCollectionMetrics) *UpdateItemResult {
	r.icm = m.clone()
	return r
}

func updateItemResultFromSDK(out *dynamodb.UpdateItemOutput) *UpdateItemResult {
	return &UpdateItemResult{writeResultFromSDK(out.Attributes, out.ConsumedCapacity, out.ItemCollectionMetrics)}
}
