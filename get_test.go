package dynamo

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetItemRequest(t *testing.T) {
	t.Parallel()
	req := NewGetItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithConsistentRead(true).
		WithAttributesToGet("UserID", "Msg").
		WithReturnConsumedCapacityString("TOTAL").
		WithProjectionExpression("#u, Msg").
		AddExpressionAttributeNamesEntry("#u", "UserID")
	require.NoError(t, req.Err())

	assert.Equal(t, "Widgets", req.TableName())
	assert.Equal(t, Item{"UserID": IntValue(613)}, req.Key())
	assert.Equal(t, []string{"UserID", "Msg"}, req.AttributesToGet())
	assert.Equal(t, aws.Bool(true), req.ConsistentRead())
	assert.Equal(t, ReturnConsumedCapacityTotal, req.ReturnConsumedCapacity())
	assert.Equal(t, "#u, Msg", req.ProjectionExpression())
	assert.Equal(t, map[string]string{"#u": "UserID"}, req.ExpressionAttributeNames())

	assert.Nil(t, (&GetItemRequest{}).ConsistentRead())
}

func TestGetItemRequestKeyEntries(t *testing.T) {
	t.Parallel()

	req := (&GetItemRequest{}).SetKeyEntries(nil, RangeKey("Time", StringValue("t")))
	assert.ErrorIs(t, req.Err(), ErrNilHashKey)
	assert.Nil(t, req.Key())

	req = (&GetItemRequest{}).SetKeyEntries(HashKey("UserID", IntValue(1)), nil)
	require.NoError(t, req.Err())
	assert.Equal(t, Item{"UserID": IntValue(1)}, req.Key())

	req.SetKeyEntries(HashKey("UserID", IntValue(2)), RangeKey("Time", StringValue("t")))
	assert.Equal(t, Item{"UserID": IntValue(2), "Time": StringValue("t")}, req.Key())

	req.AddKeyEntry("Time", StringValue("other"))
	assert.ErrorIs(t, req.Err(), ErrDuplicateKey)
	assert.Equal(t, StringValue("t"), req.Key()["Time"])

	req.ClearKeyEntries()
	assert.Nil(t, req.Key())
}

func TestGetItemRequestAttributesToGet(t *testing.T) {
	t.Parallel()
	req := &GetItemRequest{}
	assert.Nil(t, req.AttributesToGet())

	req.WithAttributesToGet()
	assert.NotNil(t, req.AttributesToGet())
	assert.Empty(t, req.AttributesToGet())

	req.WithAttributesToGet("a").WithAttributesToGet("b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, req.AttributesToGet())

	names := []string{"x"}
	req.SetAttributesToGet(names)
	names[0] = "y"
	assert.Equal(t, []string{"x"}, req.AttributesToGet())

	req.SetAttributesToGet(nil)
	assert.Nil(t, req.AttributesToGet())

	req.SetAttributesToGet([]string{})
	assert.NotNil(t, req.AttributesToGet())
	assert.Empty(t, req.AttributesToGet())
}

func TestGetItemRequestWithExpression(t *testing.T) {
	t.Parallel()
	proj := expression.NamesList(expression.Name("UserID"), expression.Name("Msg"))
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	require.NoError(t, err)

	req := NewGetItemRequest("Widgets", Item{"UserID": IntValue(1)}).WithExpression(expr)
	require.NoError(t, req.Err())
	assert.Equal(t, *expr.Projection(), req.ProjectionExpression())
	assert.Equal(t, expr.Names(), req.ExpressionAttributeNames())
}

func TestGetItemRequestJSON(t *testing.T) {
	t.Parallel()
	req := NewGetItemRequest("Widgets", Item{"UserID": IntValue(613)}).
		WithConsistentRead(false).
		SetAttributesToGet([]string{})
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"TableName": "Widgets",
		"Key": {"UserID": {"N": "613"}},
		"ConsistentRead": false,
		"AttributesToGet": []
	}`, string(data))

	var got GetItemRequest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, req, &got)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"ReturnConsumedCapacity":"ALL"}`), &got), ErrInvalidEnum)
}

func TestGetItemRequestInput(t *testing.T) {
	t.Parallel()
	in := NewGetItemRequest("Widgets", Item{"UserID": IntValue(1)}).
		WithConsistentRead(true).
		input()
	assert.Equal(t, "Widgets", aws.ToString(in.TableName))
	assert.True(t, aws.ToBool(in.ConsistentRead))
	assert.Nil(t, in.ProjectionExpression)
	assert.Empty(t, in.ReturnConsumedCapacity)
}

func TestGetItemResult(t *testing.T) {
	t.Parallel()
	res := getItemResultFromSDK(&dynamodb.GetItemOutput{})
	assert.Nil(t, res.Item())
	assert.Nil(t, res.ConsumedCapacity())
	var w struct{ UserID int }
	assert.ErrorIs(t, res.Decode(&w), ErrNotFound)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	res.WithItem(Item{"UserID": IntValue(613)})
	require.NoError(t, res.Decode(&w))
	assert.Equal(t, 613, w.UserID)

	data, err = json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Item":{"UserID":{"N":"613"}}}`, string(data))

	var got GetItemResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, res, &got)
}
