package dynamo

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// writeResult holds what PutItem, DeleteItem and UpdateItem return.
type writeResult struct {
	attributes Item
	cc         *ConsumedCapacity
	icm        *ItemCollectionMetrics
}

// Attributes returns a copy of the item attributes selected by ReturnValues,
// or nil if none were requested or the item did not exist.
func (r *writeResult) Attributes() Item { return maps.Clone(r.attributes) }

// ConsumedCapacity returns a copy of the capacity consumed, if it was requested.
func (r *writeResult) ConsumedCapacity() *ConsumedCapacity { return r.cc.clone() }

// ItemCollectionMetrics returns a copy of the item collection metrics, if they were requested.
func (r *writeResult) ItemCollectionMetrics() *ItemCollectionMetrics { return r.icm.clone() }

// Decode unmarshals the returned attributes into out, which must be a pointer.
// Returns ErrNotFound if no attributes were returned.
func (r *writeResult) Decode(out any) error {
	if r.attributes == nil {
		return ErrNotFound
	}
	return UnmarshalItem(r.attributes, out)
}

type writeResultJSON struct {
	Attributes            Item                   `json:"Attributes,omitzero"`
	ConsumedCapacity      *ConsumedCapacity      `json:"ConsumedCapacity,omitempty"`
	ItemCollectionMetrics *ItemCollectionMetrics `json:"ItemCollectionMetrics,omitempty"`
}

// MarshalJSON encodes the result in the DynamoDB JSON protocol.
func (r *writeResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(writeResultJSON{
		Attributes:            r.attributes,
		ConsumedCapacity:      r.cc,
		ItemCollectionMetrics: r.icm,
	})
}

// UnmarshalJSON decodes a result in the DynamoDB JSON protocol.
func (r *writeResult) UnmarshalJSON(data []byte) error {
	var w writeResultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = writeResult{attributes: w.Attributes, cc: w.ConsumedCapacity, icm: w.ItemCollectionMetrics}
	return nil
}

func writeResultFromSDK(attrs map[string]types.AttributeValue, cc *types.ConsumedCapacity, icm *types.ItemCollectionMetrics) writeResult {
	return writeResult{
		attributes: attrs,
		cc:         consumedCapacityFromSDK(cc),
		icm:        itemCollectionMetricsFromSDK(icm),
	}
}

func checkWriteEnums(op ConditionalOperator, rv ReturnValue, rcc ReturnConsumedCapacity,
	ricm ReturnItemCollectionMetrics, onFail ReturnValuesOnConditionCheckFailure) error {
	for _, err := range []error{
		checkEnum("ConditionalOperator", op),
		checkEnum("ReturnValues", rv),
		checkEnum("ReturnConsumedCapacity", rcc),
		checkEnum("ReturnItemCollectionMetrics", ricm),
		checkEnum("ReturnValuesOnConditionCheckFailure", onFail),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// checkOldReturnValue checks ReturnValues for PutItem and DeleteItem,
// which can only return the item as it was before the write.
func checkOldReturnValue(op string, v ReturnValue) error {
	switch v {
	case "", ReturnValueNone, ReturnValueAllOld:
		return nil
	}
	if err := checkEnum("ReturnValues", v); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s ReturnValues %q (want one of [NONE ALL_OLD])", ErrInvalidEnum, op, string(v))
}
