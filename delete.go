package dynamo

import (
	"encoding/json"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DeleteItemRequest is a request to delete an item by its primary key.
// See: http://docs.aws.amazon.com/amazondynamodb/latest/APIReference/API_DeleteItem.html
type DeleteItemRequest struct {
	tableName string
	key       Item

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

// NewDeleteItemRequest creates a new request to delete the item with the given key from table.
func NewDeleteItemRequest(table string, key Item) *DeleteItemRequest {
	return (&DeleteItemRequest{}).WithTableName(table).WithKey(key)
}

// TableName returns the name of the table to delete from.
func (r *DeleteItemRequest) TableName() string { return r.tableName }

// WithTableName sets the table to delete from.
func (r *DeleteItemRequest) WithTableName(name string) *DeleteItemRequest {
	r.tableName = name
	return r
}

// Key returns a copy of the primary key.
func (r *DeleteItemRequest) Key() Item { return maps.Clone(r.key) }

// WithKey replaces the primary key with a copy of key.
func (r *DeleteItemRequest) WithKey(key Item) *DeleteItemRequest {
	r.key = maps.Clone(key)
	return r
}

// SetKeyEntries replaces the primary key with the given hash key and optional range key.
// A nil hash key records ErrNilHashKey.
func (r *DeleteItemRequest) SetKeyEntries(hash, rng *KeyEntry) *DeleteItemRequest {
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
func (r *DeleteItemRequest) AddKeyEntry(name string, value AttributeValue) *DeleteItemRequest {
	r.setError(addEntry(&r.key, "Key", name, value))
	return r
}

// ClearKeyEntries removes the primary key.
func (r *DeleteItemRequest) ClearKeyEntries() *DeleteItemRequest {
	r.key = nil
	return r
}

// Expected returns a copy of the legacy conditions.
func (r *DeleteItemRequest) Expected() map[string]ExpectedAttributeValue { return maps.Clone(r.expected) }

// WithExpected replaces the legacy conditions with a copy of expected.
func (r *DeleteItemRequest) WithExpected(expected map[string]ExpectedAttributeValue) *DeleteItemRequest {
	if err := checkEntries(expected); err != nil {
		r.setError(err)
		return r
	}
	r.expected = maps.Clone(expected)
	return r
}

// AddExpectedEntry adds a legacy condition on one attribute.
// Adding a name twice records ErrDuplicateKey and keeps the first condition.
func (r *DeleteItemRequest) AddExpectedEntry(name string, cond ExpectedAttributeValue) *DeleteItemRequest {
	if err := cond.check(); err != nil {
		r.setError(err)
		return r
	}
	r.setError(addEntry(&r.expected, "Expected", name, cond))
	return r
}

// ClearExpectedEntries removes all legacy conditions.
func (r *DeleteItemRequest) ClearExpectedEntries() *DeleteItemRequest {
	r.expected = nil
	return r
}

// ConditionalOperator returns the operator joining the legacy conditions.
func (r *DeleteItemRequest) ConditionalOperator() ConditionalOperator { return r.condOp }

// WithConditionalOperator sets the operator joining the legacy conditions.
func (r *DeleteItemRequest) WithConditionalOperator(op ConditionalOperator) *DeleteItemRequest {
	if err := checkEnum("ConditionalOperator", op); err != nil {
		r.setError(err)
		return r
	}
	r.condOp = op
	return r
}

// WithConditionalOperatorString parses and sets the operator joining the legacy conditions.
func (r *DeleteItemRequest) WithConditionalOperatorString(s string) *DeleteItemRequest {
	op, err := ParseConditionalOperator(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithConditionalOperator(op)
}

// ReturnValues returns which version of the item the response will carry.
func (r *DeleteItemRequest) ReturnValues() ReturnValue { return r.returnType }

// WithReturnValues sets which version of the item the response will carry.
// DeleteItem accepts NONE and ALL_OLD; any other literal records ErrInvalidEnum.
func (r *DeleteItemRequest) WithReturnValues(v ReturnValue) *DeleteItemRequest {
	if err := checkOldReturnValue("DeleteItem", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnType = v
	return r
}

// WithReturnValuesString parses and sets which version of the item the response will carry.
func (r *DeleteItemRequest) WithReturnValuesString(s string) *DeleteItemRequest {
	v, err := ParseReturnValue(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnValues(v)
}

// ReturnConsumedCapacity returns the capacity reporting level.
func (r *DeleteItemRequest) ReturnConsumedCapacity() ReturnConsumedCapacity { return r.returnCC }

// WithReturnConsumedCapacity sets the capacity reporting level.
func (r *DeleteItemRequest) WithReturnConsumedCapacity(v ReturnConsumedCapacity) *DeleteItemRequest {
	if err := checkEnum("ReturnConsumedCapacity", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnCC = v
	return r
}

// WithReturnConsumedCapacityString parses and sets the capacity reporting level.
func (r *DeleteItemRequest) WithReturnConsumedCapacityString(s string) *DeleteItemRequest {
	v, err := ParseReturnConsumedCapacity(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnConsumedCapacity(v)
}

// ReturnItemCollectionMetrics returns whether item collection metrics are requested.
func (r *DeleteItemRequest) ReturnItemCollectionMetrics() ReturnItemCollectionMetrics {
	return r.returnICM
}

// WithReturnItemCollectionMetrics sets whether item collection metrics are requested.
func (r *DeleteItemRequest) WithReturnItemCollectionMetrics(v ReturnItemCollectionMetrics) *DeleteItemRequest {
	if err := checkEnum("ReturnItemCollectionMetrics", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnICM = v
	return r
}

// WithReturnItemCollectionMetricsString parses and sets whether item collection metrics are requested.
func (r *DeleteItemRequest) WithReturnItemCollectionMetricsString(s string) *DeleteItemRequest {
	v, err := ParseReturnItemCollectionMetrics(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnItemCollectionMetrics(v)
}

// ReturnValuesOnConditionCheckFailure returns whether a failed condition returns the current item.
func (r *DeleteItemRequest) ReturnValuesOnConditionCheckFailure() ReturnValuesOnConditionCheckFailure {
	return r.onCondFail
}

// WithReturnValuesOnConditionCheckFailure sets whether a failed condition returns the current item.
func (r *DeleteItemRequest) WithReturnValuesOnConditionCheckFailure(v ReturnValuesOnConditionCheckFailure) *DeleteItemRequest {
	if err := checkEnum("ReturnValuesOnConditionCheckFailure", v); err != nil {
		r.setError(err)
		return r
	}
	r.onCondFail = v
	return r
}

// WithReturnValuesOnConditionCheckFailureString parses and sets whether a failed condition returns the current item.
func (r *DeleteItemRequest) WithReturnValuesOnConditionCheckFailureString(s string) *DeleteItemRequest {
	v, err := ParseReturnValuesOnConditionCheckFailure(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnValuesOnConditionCheckFailure(v)
}

// ConditionExpression returns the condition expression.
func (r *DeleteItemRequest) ConditionExpression() string { return r.condition }

// WithConditionExpression sets a condition for this delete to succeed.
// The expression is sent as-is.
func (r *DeleteItemRequest) WithConditionExpression(expr string) *DeleteItemRequest {
	r.condition = expr
	return r
}

// ExpressionAttributeNames returns a copy of the name placeholders.
func (r *DeleteItemRequest) ExpressionAttributeNames() map[string]string { return r.names() }

// WithExpressionAttributeNames replaces the name placeholders with a copy of names.
func (r *DeleteItemRequest) WithExpressionAttributeNames(names map[string]string) *DeleteItemRequest {
	r.nameExpr = maps.Clone(names)
	return r
}

// AddExpressionAttributeNamesEntry adds one name placeholder, such as "#n" → "Name".
// Adding a placeholder twice records ErrDuplicateKey and keeps the first name.
func (r *DeleteItemRequest) AddExpressionAttributeNamesEntry(placeholder, name string) *DeleteItemRequest {
	r.setError(r.addName(placeholder, name))
	return r
}

// ClearExpressionAttributeNamesEntries removes all name placeholders.
func (r *DeleteItemRequest) ClearExpressionAttributeNamesEntries() *DeleteItemRequest {
	r.nameExpr = nil
	return r
}

// ExpressionAttributeValues returns a copy of the value placeholders.
func (r *DeleteItemRequest) ExpressionAttributeValues() Item { return r.values() }

// WithExpressionAttributeValues replaces the value placeholders with a copy of values.
func (r *DeleteItemRequest) WithExpressionAttributeValues(values Item) *DeleteItemRequest {
	r.valueExpr = maps.Clone(values)
	return r
}

// AddExpressionAttributeValuesEntry adds one value placeholder, such as ":v" → 42.
// Adding a placeholder twice records ErrDuplicateKey and keeps the first value.
func (r *DeleteItemRequest) AddExpressionAttributeValuesEntry(placeholder string, value AttributeValue) *DeleteItemRequest {
	r.setError(r.addValue(placeholder, value))
	return r
}

// ClearExpressionAttributeValuesEntries removes all value placeholders.
func (r *DeleteItemRequest) ClearExpressionAttributeValuesEntries() *DeleteItemRequest {
	r.valueExpr = nil
	return r
}

// WithExpression copies the condition and placeholders produced by an expression builder.
func (r *DeleteItemRequest) WithExpression(expr expression.Expression) *DeleteItemRequest {
	if c := expr.Condition(); c != nil {
		r.condition = *c
	}
	r.setError(r.merge(expr))
	return r
}

type deleteItemJSON struct {
	TableName                           string                              `json:"TableName,omitempty"`
	Key                                 Item                                `json:"Key,omitzero"`
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
func (r *DeleteItemRequest) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return json.Marshal(deleteItemJSON{
		TableName:                           r.tableName,
		Key:                                 r.key,
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
func (r *DeleteItemRequest) UnmarshalJSON(data []byte) error {
	var w deleteItemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkWriteEnums(w.ConditionalOperator, w.ReturnValues, w.ReturnConsumedCapacity,
		w.ReturnItemCollectionMetrics, w.ReturnValuesOnConditionCheckFailure); err != nil {
		return err
	}
	if err := checkOldReturnValue("DeleteItem", w.ReturnValues); err != nil {
		return err
	}
	*r = DeleteItemRequest{
		tableName:  w.TableName,
		key:        w.Key,
		expected:   w.Expected,
		condOp:     w.ConditionalOperator,
		returnType: w.ReturnValues,
		returnCC:   w.ReturnConsumedCapacity,
		returnICM:  w.ReturnItemCollectionMetrics,
		onCondFail: w.ReturnValuesOnConditionCheckFailure,
		subber:     subber{nameExpr: w.ExpressionAttributeNames, valueExpr: w.ExpressionAttributeValues},
		condition:  w.ConditionExpression,
	}
	return nil
}

func (r *DeleteItemRequest) input() *dynamodb.DeleteItemInput {
	return &dynamodb.DeleteItemInput{
		TableName:                           ptrOf(r.tableName),
		Key:                                 r.key,
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

// DeleteItemResult is the response to a DeleteItemRequest.
type DeleteItemResult struct {
	writeResult
}

// WithAttributes sets the returned attributes and returns the result.
func (r *DeleteItemResult) WithAttributes(item Item) *DeleteItemResult {
	r.attributes = maps.Clone(item)
	return r
}

// WithConsumedCapacity sets the capacity consumed and returns the result.
func (r *DeleteItemResult) WithConsumedCapacity(cc *ConsumedCapacity) *DeleteItemResult {
	r.cc = cc.clone()
	return r
}

// WithItemCollectionMetrics sets the item collection metrics and returns the result.
func (r *DeleteItemResult) WithItemCollectionMetrics(m *ItemCollectionMetrics) *DeleteItemResult {
	r.icm = m.clone()
	return r
}

func deleteItemResultFromSDK(out *dynamodb.DeleteItemOutput) *DeleteItemResult {
	return &DeleteItemResult{writeResultFromSDK(out.Attributes, out.ConsumedCapacity, out.ItemCollectionMetrics)}
}
