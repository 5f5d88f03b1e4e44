package dynamo

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttributeValue is a single DynamoDB value.
// It is the SDK's sealed union: exactly one member type per value kind.
type AttributeValue = types.AttributeValue

// Item is a mapping of attribute names to values, as sent to and returned by DynamoDB.
type Item map[string]AttributeValue

type shapeKey byte

const (
	shapeB    shapeKey = 'B'
	shapeBOOL shapeKey = 'T'
	shapeN    shapeKey = 'N'
	shapeS    shapeKey = 'S'
	shapeL    shapeKey = 'L'
	shapeM    shapeKey = 'M'
	shapeBS   shapeKey = 'b'
	shapeNS   shapeKey = 'n'
	shapeSS   shapeKey = 's'
	shapeNULL shapeKey = '0'

	shapeAny     shapeKey = '_'
	shapeInvalid shapeKey = 0
)

func shapeOf(av AttributeValue) shapeKey {
	if av == nil {
		return shapeInvalid
	}
	switch av.(type) {
	case *types.AttributeValueMemberB:
		return shapeB
	case *types.AttributeValueMemberBS:
		return shapeBS
	case *types.AttributeValueMemberBOOL:
		return shapeBOOL
	case *types.AttributeValueMemberN:
		return shapeN
	case *types.AttributeValueMemberS:
		return shapeS
	case *types.AttributeValueMemberL:
		return shapeL
	case *types.AttributeValueMemberNS:
		return shapeNS
	case *types.AttributeValueMemberSS:
		return shapeSS
	case *types.AttributeValueMemberM:
		return shapeM
	case *types.AttributeValueMemberNULL:
		return shapeNULL
	}
	return shapeAny
}

func avTypeName(av AttributeValue) string {
	if av == nil {
		return "<nil>"
	}
	switch av.(type) {
	case *types.AttributeValueMemberB:
		return "binary"
	case *types.AttributeValueMemberBS:
		return "binary set"
	case *types.AttributeValueMemberBOOL:
		return "boolean"
	case *types.AttributeValueMemberN:
		return "number"
	case *types.AttributeValueMemberS:
		return "string"
	case *types.AttributeValueMemberL:
		return "list"
	case *types.AttributeValueMemberNS:
		return "number set"
	case *types.AttributeValueMemberSS:
		return "string set"
	case *types.AttributeValueMemberM:
		return "map"
	case *types.AttributeValueMemberNULL:
		return "null"
	}
	return "<empty>"
}

// StringValue returns a string (S) attribute value.
func StringValue(s string) AttributeValue {
	return &types.AttributeValueMemberS{Value: s}
}

// NumberValue returns a number (N) attribute value.
// DynamoDB transports numbers as strings; n is passed through as-is.
func NumberValue(n string) AttributeValue {
	return &types.AttributeValueMemberN{Value: n}
}

// IntValue returns a number (N) attribute value for an integer.
func IntValue(n int64) AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

// FloatValue returns a number (N) attribute value for a float.
func FloatValue(f float64) AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, 64)}
}

// BoolValue returns a boolean (BOOL) attribute value.
func BoolValue(b bool) AttributeValue {
	return &types.AttributeValueMemberBOOL{Value: b}
}

// NullValue returns a null (NULL) attribute value.
func NullValue() AttributeValue {
	return &types.AttributeValueMemberNULL{Value: true}
}

// BinaryValue returns a binary (B) attribute value.
func BinaryValue(b []byte) AttributeValue {
	return &types.AttributeValueMemberB{Value: b}
}

// StringSetValue returns a string set (SS) attribute value.
func StringSetValue(ss ...string) AttributeValue {
	return &types.AttributeValueMemberSS{Value: ss}
}

// NumberSetValue returns a number set (NS) attribute value.
func NumberSetValue(ns ...string) AttributeValue {
	return &types.AttributeValueMemberNS{Value: ns}
}

// BinarySetValue returns a binary set (BS) attribute value.
func BinarySetValue(bs ...[]byte) AttributeValue {
	return &types.AttributeValueMemberBS{Value: bs}
}

// ListValue returns a list (L) attribute value.
func ListValue(avs ...AttributeValue) AttributeValue {
	return &types.AttributeValueMemberL{Value: avs}
}

// MapValue returns a map (M) attribute value.
func MapValue(item Item) AttributeValue {
	return &types.AttributeValueMemberM{Value: item}
}

// Marshal converts a Go value to an attribute value.
// Strings, booleans, integers and floats map to S, BOOL and N;
// see the attributevalue package for the full set of rules.
func Marshal(v any) (AttributeValue, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("dynamo: marshal %T: %w", v, err)
	}
	return av, nil
}

// MarshalItem converts a struct or map to an Item.
func MarshalItem(v any) (Item, error) {
	m, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("dynamo: marshal item %T: %w", v, err)
	}
	return m, nil
}

// UnmarshalItem decodes item into out, which must be a pointer.
func UnmarshalItem(item Item, out any) error {
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return fmt.Errorf("dynamo: unmarshal item: %w", err)
	}
	return nil
}

// EqualValues reports whether a and b hold the same kind and the same value.
// Sets are compared without regard to order.
func EqualValues(a, b AttributeValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if shapeOf(a) != shapeOf(b) {
		return false
	}
	switch x := a.(type) {
	case *types.AttributeValueMemberS:
		return x.Value == b.(*types.AttributeValueMemberS).Value
	case *types.AttributeValueMemberN:
		return x.Value == b.(*types.AttributeValueMemberN).Value
	case *types.AttributeValueMemberB:
		return bytes.Equal(x.Value, b.(*types.AttributeValueMemberB).Value)
	case *types.AttributeValueMemberBOOL:
		return x.Value == b.(*types.AttributeValueMemberBOOL).Value
	case *types.AttributeValueMemberNULL:
		return x.Value == b.(*types.AttributeValueMemberNULL).Value
	case *types.AttributeValueMemberSS:
		return sameSet(x.Value, b.(*types.AttributeValueMemberSS).Value)
	case *types.AttributeValueMemberNS:
		return sameSet(x.Value, b.(*types.AttributeValueMemberNS).Value)
	case *types.AttributeValueMemberBS:
		other := b.(*types.AttributeValueMemberBS).Value
		xs := make([]string, len(x.Value))
		ys := make([]string, len(other))
		for i, v := range x.Value {
			xs[i] = string(v)
		}
		for i, v := range other {
			ys[i] = string(v)
		}
		return sameSet(xs, ys)
	case *types.AttributeValueMemberL:
		other := b.(*types.AttributeValueMemberL).Value
		if len(x.Value) != len(other) {
			return false
		}
		for i := range x.Value {
			if !EqualValues(x.Value[i], other[i]) {
				return false
			}
		}
		return true
	case *types.AttributeValueMemberM:
		return Item(x.Value).Equal(b.(*types.AttributeValueMemberM).Value)
	}
	return false
}

// Equal reports whether item and other hold the same keys with equal values.
func (item Item) Equal(other Item) bool {
	if len(item) != len(other) {
		return false
	}
	for k, v := range item {
		ov, ok := other[k]
		if !ok || !EqualValues(v, ov) {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
