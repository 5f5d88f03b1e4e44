package dynamo

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutItemRequestChaining(t *testing.T) {
	t.Parallel()
	req := &PutItemRequest{}
	assert.Same(t, req, req.WithTableName("Widgets"))
	assert.Same(t, req, req.WithItem(Item{"UserID": IntValue(1)}))
	assert.Same(t, req, req.AddItemEntry("Msg", StringValue("hi")))
	assert.Same(t, req, req.WithReturnValues(ReturnValueAllOld))
	assert.Same(t, req, req.WithReturnConsumedCapacity(ReturnConsumedCapacityTotal))
	assert.Same(t, req, req.WithReturnItemCollectionMetrics(ReturnItemCollectionMetricsSize))
	assert.Same(t, req, req.WithReturnValuesOnConditionCheckFailure(ReturnOnConditionFailureAllOld))
	assert.Same(t, req, req.WithConditionExpression("attribute_not_exists(UserID)"))
	assert.Same(t, req, req.WithConditionalOperator(ConditionalOperatorAnd))

	require.NoError(t, req.Err())
	assert.Equal(t, "Widgets", req.TableName())
	assert.Equal(t, Item{"UserID": IntValue(1), "Msg": StringValue("hi")}, req.Item())
	assert.Equal(t, "ALL_OLD", string(req.ReturnValues()))
	assert.Equal(t, "TOTAL", string(req.ReturnConsumedCapacity()))
	assert.Equal(t, "SIZE", string(req.ReturnItemCollectionMetrics()))
	assert.Equal(t, "ALL_OLD", string(req.ReturnValuesOnConditionCheckFailure()))
	assert.Equal(t, "AND", string(req.ConditionalOperator()))
	assert.Equal(t, "attribute_not_exists(UserID)", req.ConditionExpression())
}

func TestPutItemRequestEnumStrings(t *testing.T) {
	t.Parallel()
	byEnum := NewPutItemRequest("Widgets", nil).
		WithReturnValues(ReturnValueAllOld).
		WithReturnConsumedCapacity(ReturnConsumedCapacityIndexes).
		WithReturnItemCollectionMetrics(ReturnItemCollectionMetricsNone).
		WithReturnValuesOnConditionCheckFailure(ReturnOnConditionFailureAllOld).
		WithConditionalOperator(ConditionalOperatorOr)
	byString := NewPutItemRequest("Widgets", nil).
		WithReturnValuesString("ALL_OLD").
		WithReturnConsumedCapacityString("INDEXES").
		WithReturnItemCollectionMetricsString("NONE").
		WithReturnValuesOnConditionCheckFailureString("ALL_OLD").
		WithConditionalOperatorString("OR")
	require.NoError(t, byString.Err())
	assert.Equal(t, byEnum, byString)

	bad := NewPutItemRequest("Widgets", nil).
		WithReturnValuesString("EVERYTHING").
		WithReturnConsumedCapacity(ReturnConsumedCapacity("SOME"))
	assert.ErrorIs(t, bad.Err(), ErrInvalidEnum)
	assert.Empty(t, bad.ReturnValues())
	assert.Empty(t, bad.ReturnConsumedCapacity())

	failBad := NewPutItemRequest("Widgets", nil).WithReturnValuesOnConditionCheckFailureString("ALL_NEW")
	assert.ErrorIs(t, failBad.Err(), ErrInvalidEnum)
	assert.Empty(t, failBad.ReturnValuesOnConditionCheckFailure())
}

func TestPutItemRequestReturnValuesSubset(t *testing.T) {
	t.Parallel()
	for _, v := range []ReturnValue{ReturnValueNone, ReturnValueAllOld} {
		assert.NoError(t, NewPutItemRequest("Widgets", nil).WithReturnValues(v).Err(), v)
	}
	for _, v := range []ReturnValue{ReturnValueUpdatedOld, ReturnValueAllNew, ReturnValueUpdatedNew} {
		req := NewPutItemRequest("Widgets", nil).WithReturnValues(v)
		assert.ErrorIs(t, req.Err(), ErrInvalidEnum, v)
		assert.Empty(t, req.ReturnValues())
	}

	var got PutItemRequest
	err := json.Unmarshal([]byte(`{"TableName":"Widgets","ReturnValues":"UPDATED_NEW"}`), &got)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestPutItemRequestWithExpectedInvalid(t *testing.T) {
	t.Parallel()
	req := NewPutItemRequest("Widgets", nil).
		WithExpected(map[string]ExpectedAttributeValue{
			"Count": {ComparisonOperator: types.ComparisonOperatorGe, AttributeValueList: []AttributeValue{IntValue(1)}},
			"Msg":   {ComparisonOperator: "ALMOST"},
		})
	assert.ErrorIs(t, req.Err(), ErrInvalidEnum)
	assert.Nil(t, req.Expected())

	_, err := json.Marshal(req)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestPutItemRequestConstructorEquivalence(t *testing.T) {
	t.Parallel()
	item := Item{"UserID": IntValue(613)}
	assert.Equal(t,
		NewPutItemRequest("Widgets", item),
		(&PutItemRequest{}).WithTableName("Widgets").WithItem(item),
	)
	assert.Equal(t, &PutItemRequest{}, NewPutItemRequest("", nil))
}

func TestPutItemRequestEntries(t *testing.T) {
	t.Parallel()

	t.Run("duplicate keeps first", func(t *testing.T) {
		req := NewPutItemRequest("Widgets", nil).
			AddItemEntry("UserID", IntValue(1)).
			AddItemEntry("UserID", IntValue(2))
		assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
		assert.Equal(t, IntValue(1), req.Item()["UserID"])

		req = NewPutItemRequest("Widgets", nil).
			AddExpressionAttributeNamesEntry("#n", "Name").
			AddExpressionAttributeNamesEntry("#n", "Other")
		assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
		assert.Equal(t, map[string]string{"#n": "Name"}, req.ExpressionAttributeNames())

		req = NewPutItemRequest("Widgets", nil).
			AddExpressionAttributeValuesEntry(":v", IntValue(1)).
			AddExpressionAttributeValuesEntry(":v", IntValue(2))
		assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
		assert.Equal(t, Item{":v": IntValue(1)}, req.ExpressionAttributeValues())

		req = NewPutItemRequest("Widgets", nil).
			AddExpectedEntry("Count", ExpectedAttributeValue{Exists: aws.Bool(false)}).
			AddExpectedEntry("Count", ExpectedAttributeValue{Value: IntValue(1)})
		assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
		assert.Equal(t, aws.Bool(false), req.Expected()["Count"].Exists)
	})

	t.Run("clear", func(t *testing.T) {
		req := NewPutItemRequest("Widgets", Item{"UserID": IntValue(1)}).
			AddExpectedEntry("Count", ExpectedAttributeValue{Exists: aws.Bool(false)}).
			AddExpressionAttributeNamesEntry("#n", "Name").
			AddExpressionAttributeValuesEntry(":v", IntValue(1)).
			ClearItemEntries().
			ClearExpectedEntries().
			ClearExpressionAttributeNamesEntries().
			ClearExpressionAttributeValuesEntries()
		require.NoError(t, req.Err())
		assert.Nil(t, req.Item())
		assert.Nil(t, req.Expected())
		assert.Nil(t, req.ExpressionAttributeNames())
		assert.Nil(t, req.ExpressionAttributeValues())
	})

	t.Run("invalid comparison operator", func(t *testing.T) {
		req := NewPutItemRequest("Widgets", nil).
			AddExpectedEntry("Count", ExpectedAttributeValue{ComparisonOperator: "ALMOST"})
		assert.ErrorIs(t, req.Err(), ErrInvalidEnum)
		assert.Nil(t, req.Expected())
	})

	t.Run("copies", func(t *testing.T) {
		item := Item{"UserID": IntValue(1)}
		req := NewPutItemRequest("Widgets", item)
		item["UserID"] = IntValue(2)
		got := req.Item()
		got["Extra"] = NullValue()
		assert.Equal(t, Item{"UserID": IntValue(1)}, req.Item())
	})
}

func TestPutItemRequestWithExpression(t *testing.T) {
	t.Parallel()
	cond := expression.AttributeNotExists(expression.Name("UserID")).
		Or(expression.Name("Count").LessThan(expression.Value(10)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	require.NoError(t, err)

	req := NewPutItemRequest("Widgets", Item{"UserID": IntValue(1)}).WithExpression(expr)
	require.NoError(t, req.Err())
	assert.Equal(t, *expr.Condition(), req.ConditionExpression())
	assert.Equal(t, expr.Names(), req.ExpressionAttributeNames())
	assert.Len(t, req.ExpressionAttributeValues(), 1)

	// merging the same placeholders again is a duplicate
	req.WithExpression(expr)
	assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
}

func TestPutItemRequestJSONRepeatedName(t *testing.T) {
	t.Parallel()
	var got PutItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"TableName": "Widgets",
		"ExpressionAttributeNames": {"#m": "Msg", "#m": "Text"}
	}`), &got))
	require.NoError(t, got.Err())
	assert.Equal(t, map[string]string{"#m": "Text"}, got.ExpressionAttributeNames())

	got.AddExpressionAttributeNamesEntry("#m", "Msg")
	assert.ErrorIs(t, got.Err(), ErrDuplicateKey)
}

func TestPutItemRequestJSON(t *testing.T) {
	t.Parallel()
	req := NewPutItemRequest("Widgets", Item{"UserID": IntValue(613), "Msg": StringValue("hello")}).
		WithConditionExpression("attribute_not_exists(#id)").
		AddExpressionAttributeNamesEntry("#id", "UserID").
		WithReturnValues(ReturnValueAllOld).
		WithReturnConsumedCapacity(ReturnConsumedCapacityTotal)
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"TableName": "Widgets",
		"Item": {"UserID": {"N": "613"}, "Msg": {"S": "hello"}},
		"ConditionExpression": "attribute_not_exists(#id)",
		"ExpressionAttributeNames": {"#id": "UserID"},
		"ReturnValues": "ALL_OLD",
		"ReturnConsumedCapacity": "TOTAL"
	}`, string(data))

	var got PutItemRequest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, req, &got)

	t.Run("empty maps are kept", func(t *testing.T) {
		req := NewPutItemRequest("Widgets", Item{}).WithExpected(map[string]ExpectedAttributeValue{})
		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"TableName":"Widgets","Item":{},"Expected":{}}`, string(data))
	})

	t.Run("sticky error", func(t *testing.T) {
		req := NewPutItemRequest("Widgets", nil).WithReturnValuesString("nope")
		_, err := json.Marshal(req)
		assert.ErrorIs(t, err, ErrInvalidEnum)
	})

	t.Run("invalid enum", func(t *testing.T) {
		var got PutItemRequest
		err := json.Unmarshal([]byte(`{"TableName":"Widgets","ReturnValues":"SOME"}`), &got)
		assert.ErrorIs(t, err, ErrInvalidEnum)
	})
}

func TestPutItemRequestInput(t *testing.T) {
	t.Parallel()
	req := NewPutItemRequest("Widgets", Item{"UserID": IntValue(1)}).
		AddExpectedEntry("Count", ExpectedAttributeValue{
			ComparisonOperator: types.ComparisonOperatorGt,
			AttributeValueList: []AttributeValue{IntValue(0)},
		}).
		WithReturnItemCollectionMetrics(ReturnItemCollectionMetricsSize)
	in := req.input()
	assert.Equal(t, "Widgets", *in.TableName)
	assert.Equal(t, map[string]types.AttributeValue{"UserID": IntValue(1)}, in.Item)
	assert.Equal(t, types.ComparisonOperatorGt, in.Expected["Count"].ComparisonOperator)
	assert.Equal(t, types.ReturnItemCollectionMetricsSize, in.ReturnItemCollectionMetrics)
	assert.Nil(t, in.ConditionExpression)
	assert.Nil(t, in.ExpressionAttributeNames)
}

func TestPutItemResult(t *testing.T) {
	t.Parallel()
	res := (&PutItemResult{}).
		WithAttributes(Item{"UserID": IntValue(1), "Msg": StringValue("old")}).
		WithConsumedCapacity(&ConsumedCapacity{TableName: "Widgets", CapacityUnits: aws.Float64(1)}).
		WithItemCollectionMetrics((&ItemCollectionMetrics{}).WithSizeEstimateRangeGB(0, 1))

	var w struct {
		UserID int
		Msg    string
	}
	require.NoError(t, res.Decode(&w))
	assert.Equal(t, 1, w.UserID)
	assert.Equal(t, "old", w.Msg)
	assert.Equal(t, 1.0, res.ConsumedCapacity().Total())

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Attributes": {"UserID": {"N": "1"}, "Msg": {"S": "old"}},
		"ConsumedCapacity": {"TableName": "Widgets", "CapacityUnits": 1},
		"ItemCollectionMetrics": {"SizeEstimateRangeGB": [0, 1]}
	}`, string(data))

	var got PutItemResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, res, &got)

	assert.ErrorIs(t, (&PutItemResult{}).Decode(&w), ErrNotFound)
}
