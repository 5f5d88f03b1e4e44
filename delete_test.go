package dynamo

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteItemRequestKeyEntries(t *testing.T) {
	t.Parallel()

	req := NewDeleteItemRequest("Widgets", nil).SetKeyEntries(nil, nil)
	assert.ErrorIs(t, req.Err(), ErrNilHashKey)

	req = NewDeleteItemRequest("Widgets", nil).
		SetKeyEntries(HashKey("UserID", IntValue(613)), RangeKey("Time", StringValue("2015-12-04")))
	require.NoError(t, req.Err())
	assert.Equal(t, Item{"UserID": IntValue(613), "Time": StringValue("2015-12-04")}, req.Key())

	req.ClearKeyEntries().AddKeyEntry("UserID", IntValue(1))
	require.NoError(t, req.Err())
	assert.Equal(t, Item{"UserID": IntValue(1)}, req.Key())
}

func TestDeleteItemRequest(t *testing.T) {
	t.Parallel()
	byEnum := NewDeleteItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithReturnValues(ReturnValueAllOld).
		WithReturnValuesOnConditionCheckFailure(ReturnOnConditionFailureAllOld).
		WithConditionExpression("Msg = :m").
		AddExpressionAttributeValuesEntry(":m", StringValue("bye"))
	byString := (&DeleteItemRequest{}).
		WithTableName("Widgets").
		WithKey(Item{"UserID": IntValue(613)}).
		WithReturnValuesString("ALL_OLD").
		WithReturnValuesOnConditionCheckFailureString("ALL_OLD").
		WithConditionExpression("Msg = :m").
		WithExpressionAttributeValues(Item{":m": StringValue("bye")})
	require.NoError(t, byEnum.Err())
	require.NoError(t, byString.Err())
	assert.Equal(t, byEnum, byString)

	in := byEnum.input()
	assert.Equal(t, "Msg = :m", aws.ToString(in.ConditionExpression))
	assert.Equal(t, types.ReturnValueAllOld, in.ReturnValues)
	assert.Equal(t, types.ReturnValuesOnConditionCheckFailureAllOld, in.ReturnValuesOnConditionCheckFailure)
	assert.Equal(t, map[string]types.AttributeValue{":m": StringValue("bye")}, in.ExpressionAttributeValues)
}

func TestDeleteItemRequestInvalid(t *testing.T) {
	t.Parallel()
	req := NewDeleteItemRequest("Widgets", Item{"UserID": IntValue(613)}).WithReturnValues(ReturnValueAllNew)
	assert.ErrorIs(t, req.Err(), ErrInvalidEnum)
	assert.Empty(t, req.ReturnValues())

	req = NewDeleteItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithExpected(map[string]ExpectedAttributeValue{"Msg": {ComparisonOperator: "ALMOST"}})
	assert.ErrorIs(t, req.Err(), ErrInvalidEnum)
	assert.Nil(t, req.Expected())

	req = NewDeleteItemRequest("Widgets", nil).WithReturnValuesOnConditionCheckFailureString("SOMETIMES")
	assert.ErrorIs(t, req.Err(), ErrInvalidEnum)

	var got DeleteItemRequest
	err := json.Unmarshal([]byte(`{"TableName":"Widgets","ReturnValues":"UPDATED_OLD"}`), &got)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestDeleteItemRequestWithExpression(t *testing.T) {
	t.Parallel()
	cond := expression.Name("Count").Equal(expression.Value(0))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	require.NoError(t, err)

	req := NewDeleteItemRequest("Widgets", Item{"UserID": IntValue(1)}).WithExpression(expr)
	require.NoError(t, req.Err())
	assert.Equal(t, *expr.Condition(), req.ConditionExpression())
	assert.Equal(t, expr.Names(), req.ExpressionAttributeNames())
	assert.Equal(t, Item(expr.Values()), req.ExpressionAttributeValues())
}

func TestDeleteItemRequestJSON(t *testing.T) {
	t.Parallel()
	req := NewDeleteItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		AddExpectedEntry("Msg", ExpectedAttributeValue{Value: StringValue("bye")}).
		WithConditionalOperator(ConditionalOperatorAnd).
		WithReturnItemCollectionMetrics(ReturnItemCollectionMetricsSize)
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"TableName": "Widgets",
		"Key": {"UserID": {"N": "613"}},
		"Expected": {"Msg": {"Value": {"S": "bye"}}},
		"ConditionalOperator": "AND",
		"ReturnItemCollectionMetrics": "SIZE"
	}`, string(data))

	var got DeleteItemRequest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, req, &got)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"ConditionalOperator":"XOR"}`), &got), ErrInvalidEnum)
}

func TestDeleteItemResult(t *testing.T) {
	t.Parallel()
	res := deleteItemResultFromSDK(&dynamodb.DeleteItemOutput{
		Attributes: map[string]types.AttributeValue{"UserID": IntValue(613)},
		ConsumedCapacity: &types.ConsumedCapacity{
			TableName:     aws.String("Widgets"),
			CapacityUnits: aws.Float64(1),
		},
		ItemCollectionMetrics: &types.ItemCollectionMetrics{
			ItemCollectionKey:   map[string]types.AttributeValue{"UserID": IntValue(613)},
			SizeEstimateRangeGB: []float64{0, 1},
		},
	})
	assert.Equal(t, Item{"UserID": IntValue(613)}, res.Attributes())
	assert.Equal(t, "Widgets", res.ConsumedCapacity().TableName)
	assert.Equal(t, []float64{0, 1}, res.ItemCollectionMetrics().SizeEstimateRangeGB)

	// getters hand out copies
	res.ItemCollectionMetrics().SizeEstimateRangeGB[0] = 99
	res.Attributes()["Extra"] = NullValue()
	assert.Equal(t, []float64{0, 1}, res.ItemCollectionMetrics().SizeEstimateRangeGB)
	assert.Len(t, res.Attributes(), 1)

	empty := deleteItemResultFromSDK(&dynamodb.DeleteItemOutput{})
	assert.Nil(t, empty.Attributes())
	assert.Nil(t, empty.ConsumedCapacity())
	assert.Nil(t, empty.ItemCollectionMetrics())
}
