package dynamo

import (
	"encoding/json"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// PutItemRequest is a request to create or replace an item.
// See: http://docs.aws.amazon.com/amazondynamodb/latest/APIReference/API_PutItem.html
type PutItemRequest struct {
	tableName string
	item      Item

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

// NewPutItemRequest creates a new request to put item into table.
func NewPutItemRequest(table string, item Item) *PutItemRequest {
	return (&PutItemRequest{}).WithTableName(table).WithItem(item)
}

// TableName returns the name of the table to write to.
func (r *PutItemRequest) TableName() string { return r.tableName }

// WithTableName sets the table to write to.
func (r *PutItemRequest) WithTableName(name string) *PutItemRequest {
	r.tableName = name
	return r
}

// Item returns a copy of the item to write.
func (r *PutItemRequest) Item() Item { return maps.Clone(r.item) }

// WithItem replaces the item to write with a copy of item.
func (r *PutItemRequest) WithItem(item Item) *PutItemRequest {
	r.item = maps.Clone(item)
	return r
}

// AddItemEntry adds one attribute to the item.
// Adding a name twice records ErrDuplicateKey and keeps the first value.
func (r *PutItemRequest) AddItemEntry(name string, value AttributeValue) *PutItemRequest {
	r.setError(addEntry(&r.item, "Item", name, value))
	return r
}

// ClearItemEntries removes the item.
func (r *PutItemRequest) ClearItemEntries() *PutItemRequest {
	r.item = nil
	return r
}

// Expected returns a copy of the legacy conditions.
func (r *PutItemRequest) Expected() map[string]ExpectedAttributeValue { return maps.Clone(r.expected) }

// WithExpected replaces the legacy conditions with a copy of expected.
func (r *PutItemRequest) WithExpected(expected map[string]ExpectedAttributeValue) *PutItemRequest {
	if err := checkEntries(expected); err != nil {
		r.setError(err)
		return r
	}
	r.expected = maps.Clone(expected)
	return r
}

// AddExpectedEntry adds a legacy condition on one attribute.
// Adding a name twice records ErrDuplicateKey and keeps the first condition.
func (r *PutItemRequest) AddExpectedEntry(name string, cond ExpectedAttributeValue) *PutItemRequest {
	if err := cond.check(); err != nil {
		r.setError(err)
		return r
	}
	r.setError(addEntry(&r.expected, "Expected", name, cond))
	return r
}

// ClearExpectedEntries removes all legacy conditions.
func (r *PutItemRequest) ClearExpectedEntries() *PutItemRequest {
	r.expected = nil
	return r
}

// ConditionalOperator returns the operator joining the legacy conditions.
func (r *PutItemRequest) ConditionalOperator() ConditionalOperator { return r.condOp }

// WithConditionalOperator sets the operator joining the legacy conditions.
func (r *PutItemRequest) WithConditionalOperator(op ConditionalOperator) *PutItemRequest {
	if err := checkEnum("ConditionalOperator", op); err != nil {
		r.setError(err)
		return r
	}
	r.condOp = op
	return r
}

// WithConditionalOperatorString parses and sets the operator joining the legacy conditions.
func (r *PutItemRequest) WithConditionalOperatorString(s string) *PutItemRequest {
	op, err := ParseConditionalOperator(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithConditionalOperator(op)
}

// ReturnValues returns which version of the item the response will carry.
func (r *PutItemRequest) ReturnValues() ReturnValue { return r.returnType }

// WithReturnValues sets which version of the item the response will carry.
// PutItem accepts NONE and ALL_OLD; any other literal records ErrInvalidEnum.
func (r *PutItemRequest) WithReturnValues(v ReturnValue) *PutItemRequest {
	if err := checkOldReturnValue("PutItem", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnType = v
	return r
}

// WithReturnValuesString parses and sets which version of the item the response will carry.
func (r *PutItemRequest) WithReturnValuesString(s string) *PutItemRequest {
	v, err := ParseReturnValue(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnValues(v)
}

// ReturnConsumedCapacity returns the capacity reporting level.
func (r *PutItemRequest) ReturnConsumedCapacity() ReturnConsumedCapacity { return r.returnCC }

// WithReturnConsumedCapacity sets the capacity reporting level.
func (r *PutItemRequest) WithReturnConsumedCapacity(v ReturnConsumedCapacity) *PutItemRequest {
	if err := checkEnum("ReturnConsumedCapacity", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnCC = v
	return r
}

// WithReturnConsumedCapacityString parses and sets the capacity reporting level.
func (r *PutItemRequest) WithReturnConsumedCapacityString(s string) *PutItemRequest {
	v, err := ParseReturnConsumedCapacity(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnConsumedCapacity(v)
}

// ReturnItemCollectionMetrics returns whether item collection metrics are requested.
func (r *PutItemRequest) ReturnItemCollectionMetrics() ReturnItemCollectionMetrics {
	return r.returnICM
}

// WithReturnItemCollectionMetrics sets whether item collection metrics are requested.
func (r *PutItemRequest) WithReturnItemCollectionMetrics(v ReturnItemCollectionMetrics) *PutItemRequest {
	if err := checkEnum("ReturnItemCollectionMetrics", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnICM = v
	return r
}

// WithReturnItemCollectionMetricsString parses and sets whether item collection metrics are requested.
func (r *PutItemRequest) WithReturnItemCollectionMetricsString(s string) *PutItemRequest {
	v, err := ParseReturnItemCollectionMetrics(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnItemCollectionMetrics(v)
}

// ReturnValuesOnConditionCheckFailure returns whether a failed condition returns the current item.
func (r *PutItemRequest) ReturnValuesOnConditionCheckFailure() ReturnValuesOnConditionCheckFailure {
	return r.onCondFail
}

// WithReturnValuesOnConditionCheckFailure sets whether a failed condition returns the current item.
func (r *PutItemRequest) WithReturnValuesOnConditionCheckFailure(v ReturnValuesOnConditionCheckFailure) *PutItemRequest {
	if err := checkEnum("ReturnValuesOnConditionCheckFailure", v); err != nil {
		r.setError(err)
		return r
	}
	r.onCondFail = v
	return r
}

// WithReturnValuesOnConditionCheckFailureString parses and sets whether a failed condition returns the current item.
func (r *PutItemRequest) WithReturnValuesOnConditionCheckFailureString(s string) *PutItemRequest {
	v, err := ParseReturnValuesOnConditionCheckFailure(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnValuesOnConditionCheckFailure(v)
}

// ConditionExpression returns the condition expression.
func (r *PutItemRequest) ConditionExpression() string { return r.condition }

// WithConditionExpression sets a condition for this put to succeed.
// The expression is sent as-is.
func (r *PutItemRequest) WithConditionExpression(expr string) *PutItemRequest {
	r.condition = expr
	return r
}

// ExpressionAttributeNames returns a copy of the name placeholders.
func (r *PutItemRequest) ExpressionAttributeNames() map[string]string { return r.names() }

// WithExpressionAttributeNames replaces the name placeholders with a copy of names.
func (r *PutItemRequest) WithExpressionAttributeNames(names map[string]string) *PutItemRequest {
	r.nameExpr = maps.Clone(names)
	return r
}

// AddExpressionAttributeNamesEntry adds one name placeholder, such as "#n" → "Name".
// Adding a placeholder twice records ErrDuplicateKey and keeps the first name.
func (r *PutItemRequest) AddExpressionAttributeNamesEntry(placeholder, name string) *PutItemRequest {
	r.setError(r.addName(placeholder, name))
	return r
}

// ClearExpressionAttributeNamesEntries removes all name placeholders.
func (r *PutItemRequest) ClearExpressionAttributeNamesEntries() *PutItemRequest {
	r.nameExpr = nil
	return r
}

// ExpressionAttributeValues returns a copy of the value placeholders.
func (r *PutItemRequest) ExpressionAttributeValues() Item { return r.values() }

// WithExpressionAttributeValues replaces the value placeholders with a copy of values.
func (r *PutItemRequest) WithExpressionAttributeValues(values Item) *PutItemRequest {
	r.valueExpr = maps.Clone(values)
	return r
}

// AddExpressionAttributeValuesEntry adds one value placeholder, such as ":v" → 42.
// Adding a placeholder twice records ErrDuplicateKey and keeps the first value.
func (r *PutItemRequest) AddExpressionAttributeValuesEntry(placeholder string, value AttributeValue) *PutItemRequest {
	r.setError(r.addValue(placeholder, value))
	return r
}

// ClearExpressionAttributeValuesEntries removes all value placeholders.
func (r *PutItemRequest) ClearExpressionAttributeValuesEntries() *PutItemRequest {
	r.valueExpr = nil
	return r
}

// WithExpression copies the condition and placeholders produced by an expression builder.
func (r *PutItemRequest) WithExpression(expr expression.Expression) *PutItemRequest {
	if c := expr.Condition(); c != nil {
		r.condition = *c
	}
	r.setError(r.merge(expr))
	return r
}

type putItemJSON struct {
	TableName                           string                              `json:"TableName,omitempty"`
	Item                                Item                                `json:"Item,omitzero"`
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
func (r *PutItemRequest) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return json.Marshal(putItemJSON{
		TableName:                           r.tableName,
		Item:                                r.item,
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
func (r *PutItemRequest) UnmarshalJSON(data []byte) error {
	var w putItemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkWriteEnums(w.ConditionalOperator, w.ReturnValues, w.ReturnConsumedCapacity,
		w.ReturnItemCollectionMetrics, w.ReturnValuesOnConditionCheckFailure); err != nil {
		return err
	}
	if err := checkOldReturnValue("PutItem", w.ReturnValues); err != nil {
		return err
	}
	*r = PutItemRequest{
		tableName:  w.TableName,
		item:       w.Item,
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

func (r *PutItemRequest) input() *dynamodb.PutItemInput {
	return &dynamodb.PutItemInput{
		TableName:                           ptrOf(r.tableName),
		Item:                                r.item,
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

// PutItemResult is the response to a PutItemRequest.
type PutItemResult struct {
	writeResult
}

// WithAttributes sets the returned attributes and returns the result.
func (r *PutItemResult) WithAttributes(item Item) *PutItemResult {
	r.attributes = maps.Clone(item)
	return r
}

// WithConsumedCapacity sets the capacity consumed and returns the result.
func (r *PutItemResult) WithConsumedCapacity(cc *ConsumedCapacity) *PutItemResult {
	r.cc = cc.clone()
	return r
}

// WithItemCollectionMetrics sets the item collection metrics and returns the result.
func (r *PutItemResult) WithItemCollectionMetrics(m *ItemCollectionMetrics) *PutItemResult {
	r.icm = m.clone()
	return r
}

func putItemResultFromSDK(out *dynamodb.PutItemOutput) *PutItemResult {
	return &PutItemResult{writeResultFromSDK(out.Attributes, out.ConsumedCapacity, out.ItemCollectionMetrics)}
}
