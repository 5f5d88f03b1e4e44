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

func TestUpdateItemRequestAttributeUpdates(t *testing.T) {
	t.Parallel()
	req := NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		AddAttributeUpdatesEntry("Count", NewAttributeValueUpdate(IntValue(1), AttributeActionAdd)).
		AddAttributeUpdatesEntry("Stale", AttributeValueUpdate{Action: AttributeActionDelete})
	require.NoError(t, req.Err())
	assert.Len(t, req.AttributeUpdates(), 2)

	req.AddAttributeUpdatesEntry("Count", NewAttributeValueUpdate(IntValue(5), AttributeActionPut))
	assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
	assert.Equal(t, NewAttributeValueUpdate(IntValue(1), AttributeActionAdd), req.AttributeUpdates()["Count"])

	req.ClearAttributeUpdatesEntries()
	assert.Nil(t, req.AttributeUpdates())

	bad := NewUpdateItemRequest("Widgets", nil).
		AddAttributeUpdatesEntry("Count", AttributeValueUpdate{Action: "INCREMENT"})
	assert.ErrorIs(t, bad.Err(), ErrInvalidEnum)
	assert.Nil(t, bad.AttributeUpdates())
}

func TestUpdateItemRequestBulkInvalid(t *testing.T) {
	t.Parallel()
	req := NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithAttributeUpdates(map[string]AttributeValueUpdate{
			"Count": NewAttributeValueUpdate(IntValue(1), AttributeActionAdd),
			"Msg":   {Value: StringValue("hi"), Action: "INCREMENT"},
		})
	assert.ErrorIs(t, req.Err(), ErrInvalidEnum)
	assert.Nil(t, req.AttributeUpdates())
	assert.Nil(t, req.input().AttributeUpdates)

	req = NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithExpected(map[string]ExpectedAttributeValue{"Msg": {ComparisonOperator: "ALMOST"}})
	assert.ErrorIs(t, req.Err(), ErrInvalidEnum)
	assert.Nil(t, req.Expected())

	_, err := json.Marshal(req)
	assert.ErrorIs(t, err, ErrInvalidEnum)

	ok := NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithReturnValuesOnConditionCheckFailureString("ALL_OLD").
		WithReturnValues(ReturnValueUpdatedNew)
	require.NoError(t, ok.Err())
	assert.Equal(t, ReturnOnConditionFailureAllOld, ok.ReturnValuesOnConditionCheckFailure())
}

func TestUpdateItemRequestWithExpression(t *testing.T) {
	t.Parallel()
	update := expression.Set(expression.Name("Msg"), expression.Value("hello again")).
		Add(expression.Name("Count"), expression.Value(1))
	cond := expression.AttributeExists(expression.Name("UserID"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	require.NoError(t, err)

	req := NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithExpression(expr).
		WithReturnValues(ReturnValueUpdatedNew)
	require.NoError(t, req.Err())
	assert.Equal(t, *expr.Update(), req.UpdateExpression())
	assert.Equal(t, *expr.Condition(), req.ConditionExpression())
	assert.Equal(t, expr.Names(), req.ExpressionAttributeNames())
	assert.Equal(t, Item(expr.Values()), req.ExpressionAttributeValues())

	in := req.input()
	assert.Equal(t, *expr.Update(), aws.ToString(in.UpdateExpression))
	assert.Equal(t, types.ReturnValueUpdatedNew, in.ReturnValues)
	assert.Nil(t, in.AttributeUpdates)
}

func TestUpdateItemRequestJSON(t *testing.T) {
	t.Parallel()
	req := NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithUpdateExpression("SET #m = :m").
		AddExpressionAttributeNamesEntry("#m", "Msg").
		AddExpressionAttributeValuesEntry(":m", StringValue("hi")).
		AddAttributeUpdatesEntry("Count", NewAttributeValueUpdate(IntValue(1), AttributeActionAdd)).
		WithReturnValuesString("UPDATED_OLD")
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"TableName": "Widgets",
		"Key": {"UserID": {"N": "613"}},
		"UpdateExpression": "SET #m = :m",
		"ExpressionAttributeNames": {"#m": "Msg"},
		"ExpressionAttributeValues": {":m": {"S": "hi"}},
		"AttributeUpdates": {"Count": {"Value": {"N": "1"}, "Action": "ADD"}},
		"ReturnValues": "UPDATED_OLD"
	}`, string(data))

	var got UpdateItemRequest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, req, &got)

	err = json.Unmarshal([]byte(`{"AttributeUpdates":{"Count":{"Action":"BUMP"}}}`), &got)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestUpdateItemRequestInput(t *testing.T) {
	t.Parallel()
	in := NewUpdateItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		AddAttributeUpdatesEntry("Count", NewAttributeValueUpdate(IntValue(1), AttributeActionAdd)).
		AddExpectedEntry("Count", ExpectedAttributeValue{Exists: aws.Bool(true)}).
		input()
	assert.Equal(t, types.AttributeValueUpdate{Value: IntValue(1), Action: types.AttributeActionAdd}, in.AttributeUpdates["Count"])
	assert.Equal(t, aws.Bool(true), in.Expected["Count"].Exists)
	assert.Nil(t, in.UpdateExpression)
}

func TestUpdateItemResultDecode(t *testing.T) {
	t.Parallel()
	var res UpdateItemResult
	res.WithAttributes(Item{"Count": IntValue(2)})
	var w struct{ Count int }
	require.NoError(t, res.Decode(&w))
	assert.Equal(t, 2, w.Count)

	data, err := json.Marshal(&res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Attributes":{"Count":{"N":"2"}}}`, string(data))
}
