package dynamo

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttributeValueUpdate is a legacy per-attribute update instruction used by
// UpdateItem's AttributeUpdates. How the action applies to the value is decided
// by DynamoDB; this type only carries it.
type AttributeValueUpdate struct {
	Value  AttributeValue
	Action AttributeAction
}

// NewAttributeValueUpdate pairs a value with an action.
func NewAttributeValueUpdate(value AttributeValue, action AttributeAction) AttributeValueUpdate {
	return AttributeValueUpdate{Value: value, Action: action}
}

// WithValue sets the value and returns the update.
func (u *AttributeValueUpdate) WithValue(value AttributeValue) *AttributeValueUpdate {
	u.Value = value
	return u
}

// WithAction sets the action and returns the update.
func (u *AttributeValueUpdate) WithAction(action AttributeAction) *AttributeValueUpdate {
	u.Action = action
	return u
}

type attributeValueUpdateJSON struct {
	Value  *jsonAV         `json:"Value,omitempty"`
	Action AttributeAction `json:"Action,omitempty"`
}

func (u AttributeValueUpdate) MarshalJSON() ([]byte, error) {
	w := attributeValueUpdateJSON{Action: u.Action}
	if u.Value != nil {
		w.Value = &jsonAV{u.Value}
	}
	return json.Marshal(w)
}

func (u *AttributeValueUpdate) UnmarshalJSON(data []byte) error {
	var w attributeValueUpdateJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkEnum("Action", w.Action); err != nil {
		return err
	}
	*u = AttributeValueUpdate{Action: w.Action}
	if w.Value != nil {
		u.Value = w.Value.av
	}
	return nil
}

func (u AttributeValueUpdate) check() error { return checkEnum("Action", u.Action) }

func (u AttributeValueUpdate) sdk() types.AttributeValueUpdate {
	return types.AttributeValueUpdate{Value: u.Value, Action: u.Action}
}

// ExpectedAttributeValue is a legacy condition on one attribute, used by the
// Expected parameter of writes.
type ExpectedAttributeValue struct {
	Value              AttributeValue
	Exists             *bool
	ComparisonOperator ComparisonOperator
	AttributeValueList []AttributeValue
}

type expectedJSON struct {
	Value              *jsonAV            `json:"Value,omitempty"`
	Exists             *bool              `json:"Exists,omitempty"`
	ComparisonOperator ComparisonOperator `json:"ComparisonOperator,omitempty"`
	AttributeValueList []jsonAV           `json:"AttributeValueList,omitzero"`
}

func (e ExpectedAttributeValue) MarshalJSON() ([]byte, error) {
	w := expectedJSON{
		Exists:             e.Exists,
		ComparisonOperator: e.ComparisonOperator,
		AttributeValueList: encodeValues(e.AttributeValueList),
	}
	if e.Value != nil {
		w.Value = &jsonAV{e.Value}
	}
	return json.Marshal(w)
}

func (e *ExpectedAttributeValue) UnmarshalJSON(data []byte) error {
	var w expectedJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkEnum("ComparisonOperator", w.ComparisonOperator); err != nil {
		return err
	}
	*e = ExpectedAttributeValue{
		Exists:             w.Exists,
		ComparisonOperator: w.ComparisonOperator,
		AttributeValueList: decodeValues(w.AttributeValueList),
	}
	if w.Value != nil {
		e.Value = w.Value.av
	}
	return nil
}

func (e ExpectedAttributeValue) check() error {
	return checkEnum("ComparisonOperator", e.ComparisonOperator)
}

func (e ExpectedAttributeValue) sdk() types.ExpectedAttributeValue {
	return types.ExpectedAttributeValue{
		Value:              e.Value,
		Exists:             e.Exists,
		ComparisonOperator: e.ComparisonOperator,
		AttributeValueList: e.AttributeValueList,
	}
}

// Condition is a legacy scan filter on one attribute.
type Condition struct {
	ComparisonOperator ComparisonOperator
	AttributeValueList []AttributeValue
}

type conditionJSON struct {
	ComparisonOperator ComparisonOperator `json:"ComparisonOperator"`
	AttributeValueList []jsonAV           `json:"AttributeValueList,omitzero"`
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{
		ComparisonOperator: c.ComparisonOperator,
		AttributeValueList: encodeValues(c.AttributeValueList),
	})
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var w conditionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := checkEnum("ComparisonOperator", w.ComparisonOperator); err != nil {
		return err
	}
	*c = Condition{
		ComparisonOperator: w.ComparisonOperator,
		AttributeValueList: decodeValues(w.AttributeValueList),
	}
	return nil
}

func (c Condition) check() error { return checkEnum("ComparisonOperator", c.ComparisonOperator) }

func (c Condition) sdk() types.Condition {
	return types.Condition{
		ComparisonOperator: c.ComparisonOperator,
		AttributeValueList: c.AttributeValueList,
	}
}

func sdkMap[V any, S any](m map[string]V, conv func(V) S) map[string]S {
	if m == nil {
		return nil
	}
	out := make(map[string]S, len(m))
	for k, v := range m {
		out[k] = conv(v)
	}
	return out
}
