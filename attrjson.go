package dynamo

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// jsonAV encodes an attribute value in the DynamoDB JSON protocol:
// an object with exactly one member named after the value's kind.
type jsonAV struct {
	av AttributeValue
}

func (j jsonAV) MarshalJSON() ([]byte, error) {
	var obj map[string]any
	switch v := j.av.(type) {
	case *types.AttributeValueMemberS:
		obj = map[string]any{"S": v.Value}
	case *types.AttributeValueMemberN:
		obj = map[string]any{"N": v.Value}
	case *types.AttributeValueMemberB:
		obj = map[string]any{"B": v.Value}
	case *types.AttributeValueMemberBOOL:
		obj = map[string]any{"BOOL": v.Value}
	case *types.AttributeValueMemberNULL:
		obj = map[string]any{"NULL": v.Value}
	case *types.AttributeValueMemberSS:
		obj = map[string]any{"SS": nonNil(v.Value)}
	case *types.AttributeValueMemberNS:
		obj = map[string]any{"NS": nonNil(v.Value)}
	case *types.AttributeValueMemberBS:
		obj = map[string]any{"BS": nonNil(v.Value)}
	case *types.AttributeValueMemberL:
		list := make([]jsonAV, len(v.Value))
		for i, av := range v.Value {
			list[i] = jsonAV{av}
		}
		obj = map[string]any{"L": list}
	case *types.AttributeValueMemberM:
		m, err := Item(v.Value).toJSON()
		if err != nil {
			return nil, err
		}
		obj = map[string]any{"M": m}
	default:
		return nil, fmt.Errorf("dynamo: cannot encode attribute value of type %s", avTypeName(j.av))
	}
	return json.Marshal(obj)
}

func (j *jsonAV) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("dynamo: decode attribute value: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("dynamo: attribute value must have exactly one member, got %d", len(obj))
	}
	for kind, raw := range obj {
		av, err := decodeAV(kind, raw)
		if err != nil {
			return err
		}
		j.av = av
	}
	return nil
}

func decodeAV(kind string, raw json.RawMessage) (AttributeValue, error) {
	var err error
	switch kind {
	case "S":
		v := &types.AttributeValueMemberS{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "N":
		v := &types.AttributeValueMemberN{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "B":
		v := &types.AttributeValueMemberB{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "BOOL":
		v := &types.AttributeValueMemberBOOL{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "NULL":
		v := &types.AttributeValueMemberNULL{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "SS":
		v := &types.AttributeValueMemberSS{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "NS":
		v := &types.AttributeValueMemberNS{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "BS":
		v := &types.AttributeValueMemberBS{}
		err = json.Unmarshal(raw, &v.Value)
		return v, wrapDecodeErr(kind, err)
	case "L":
		var list []jsonAV
		if err = json.Unmarshal(raw, &list); err != nil {
			return nil, wrapDecodeErr(kind, err)
		}
		v := &types.AttributeValueMemberL{Value: make([]AttributeValue, len(list))}
		for i, j := range list {
			v.Value[i] = j.av
		}
		return v, nil
	case "M":
		var item Item
		if err = json.Unmarshal(raw, &item); err != nil {
			return nil, wrapDecodeErr(kind, err)
		}
		if item == nil {
			item = Item{}
		}
		return &types.AttributeValueMemberM{Value: item}, nil
	}
	return nil, fmt.Errorf("dynamo: unknown attribute value member %q", kind)
}

func wrapDecodeErr(kind string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dynamo: decode %s attribute value: %w", kind, err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (item Item) toJSON() (map[string]jsonAV, error) {
	m := make(map[string]jsonAV, len(item))
	for k, v := range item {
		if v == nil {
			return nil, fmt.Errorf("dynamo: attribute %q has no value", k)
		}
		m[k] = jsonAV{v}
	}
	return m, nil
}

// MarshalJSON encodes item in the DynamoDB JSON protocol.
func (item Item) MarshalJSON() ([]byte, error) {
	if item == nil {
		return []byte("null"), nil
	}
	m, err := item.toJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an item in the DynamoDB JSON protocol.
func (item *Item) UnmarshalJSON(data []byte) error {
	var m map[string]jsonAV
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		*item = nil
		return nil
	}
	out := make(Item, len(m))
	for k, v := range m {
		out[k] = v.av
	}
	*item = out
	return nil
}

// MarshalValueJSON encodes a single attribute value in the DynamoDB JSON protocol.
func MarshalValueJSON(av AttributeValue) ([]byte, error) {
	return json.Marshal(jsonAV{av})
}

// UnmarshalValueJSON decodes a single attribute value in the DynamoDB JSON protocol.
func UnmarshalValueJSON(data []byte) (AttributeValue, error) {
	var j jsonAV
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return j.av, nil
}

func encodeValues(avs []AttributeValue) []jsonAV {
	if avs == nil {
		return nil
	}
	out := make([]jsonAV, len(avs))
	for i, av := range avs {
		out[i] = jsonAV{av}
	}
	return out
}

func decodeValues(js []jsonAV) []AttributeValue {
	if js == nil {
		return nil
	}
	out := make([]AttributeValue, len(js))
	for i, j := range js {
		out[i] = j.av
	}
	return out
}
