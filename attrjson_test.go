package dynamo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		av   AttributeValue
		json string
	}{
		{"string", StringValue("hi"), `{"S":"hi"}`},
		{"number", NumberValue("12.5"), `{"N":"12.5"}`},
		{"binary", BinaryValue([]byte("hi")), `{"B":"aGk="}`},
		{"bool", BoolValue(false), `{"BOOL":false}`},
		{"null", NullValue(), `{"NULL":true}`},
		{"string set", StringSetValue("a", "b"), `{"SS":["a","b"]}`},
		{"number set", NumberSetValue("1"), `{"NS":["1"]}`},
		{"binary set", BinarySetValue([]byte("hi")), `{"BS":["aGk="]}`},
		{"empty set", StringSetValue(), `{"SS":[]}`},
		{"list", ListValue(StringValue("a"), IntValue(1)), `{"L":[{"S":"a"},{"N":"1"}]}`},
		{"map", MapValue(Item{"k": BoolValue(true)}), `{"M":{"k":{"BOOL":true}}}`},
		{"empty map", MapValue(Item{}), `{"M":{}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := MarshalValueJSON(tc.av)
			require.NoError(t, err)
			assert.JSONEq(t, tc.json, string(data))

			got, err := UnmarshalValueJSON([]byte(tc.json))
			require.NoError(t, err)
			assert.True(t, EqualValues(tc.av, got), "got %#v", got)
		})
	}
}

func TestValueJSONRejects(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		`{}`,
		`{"S":"a","N":"1"}`,
		`{"X":"a"}`,
		`{"S":1}`,
		`{"L":{}}`,
		`"S"`,
	} {
		_, err := UnmarshalValueJSON([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestItemJSON(t *testing.T) {
	t.Parallel()
	item := Item{
		"UserID": IntValue(613),
		"Tags":   StringSetValue("x"),
		"Meta":   MapValue(Item{"Deep": ListValue(NullValue())}),
	}
	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"UserID": {"N": "613"},
		"Tags":   {"SS": ["x"]},
		"Meta":   {"M": {"Deep": {"L": [{"NULL": true}]}}}
	}`, string(data))

	var got Item
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, item.Equal(got))

	t.Run("nil", func(t *testing.T) {
		data, err := json.Marshal(Item(nil))
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		got := Item{"a": NullValue()}
		require.NoError(t, json.Unmarshal([]byte("null"), &got))
		assert.Nil(t, got)
	})

	t.Run("nil value", func(t *testing.T) {
		_, err := json.Marshal(Item{"a": nil})
		assert.Error(t, err)
	})
}
