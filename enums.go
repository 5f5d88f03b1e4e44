package dynamo

import (
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ReturnValue selects which version of an item a write echoes back.
type ReturnValue = types.ReturnValue

// ReturnValue literals.
const (
	ReturnValueNone       = types.ReturnValueNone
	ReturnValueAllOld     = types.ReturnValueAllOld
	ReturnValueUpdatedOld = types.ReturnValueUpdatedOld
	ReturnValueAllNew     = types.ReturnValueAllNew
	ReturnValueUpdatedNew = types.ReturnValueUpdatedNew
)

// ReturnConsumedCapacity selects how much capacity accounting a response carries.
type ReturnConsumedCapacity = types.ReturnConsumedCapacity

// ReturnConsumedCapacity literals.
const (
	ReturnConsumedCapacityIndexes = types.ReturnConsumedCapacityIndexes
	ReturnConsumedCapacityTotal   = types.ReturnConsumedCapacityTotal
	ReturnConsumedCapacityNone    = types.ReturnConsumedCapacityNone
)

// ReturnItemCollectionMetrics selects whether a write returns item collection statistics.
type ReturnItemCollectionMetrics = types.ReturnItemCollectionMetrics

// ReturnItemCollectionMetrics literals.
const (
	ReturnItemCollectionMetricsSize = types.ReturnItemCollectionMetricsSize
	ReturnItemCollectionMetricsNone = types.ReturnItemCollectionMetricsNone
)

// ReturnValuesOnConditionCheckFailure selects whether a failed condition returns the current item.
type ReturnValuesOnConditionCheckFailure = types.ReturnValuesOnConditionCheckFailure

// ReturnValuesOnConditionCheckFailure literals.
const (
	ReturnOnConditionFailureAllOld = types.ReturnValuesOnConditionCheckFailureAllOld
	ReturnOnConditionFailureNone   = types.ReturnValuesOnConditionCheckFailureNone
)

// ConditionalOperator joins the legacy Expected or ScanFilter conditions.
type ConditionalOperator = types.ConditionalOperator

// ConditionalOperator literals.
const (
	ConditionalOperatorAnd = types.ConditionalOperatorAnd
	ConditionalOperatorOr  = types.ConditionalOperatorOr
)

// AttributeAction is the legacy per-attribute update instruction.
type AttributeAction = types.AttributeAction

// AttributeAction literals.
const (
	AttributeActionAdd    = types.AttributeActionAdd
	AttributeActionPut    = types.AttributeActionPut
	AttributeActionDelete = types.AttributeActionDelete
)

// ComparisonOperator is used by the legacy Expected and ScanFilter conditions.
type ComparisonOperator = types.ComparisonOperator

// Select chooses which attributes a scan returns.
type Select = types.Select

// Select literals.
const (
	SelectAllAttributes          = types.SelectAllAttributes
	SelectAllProjectedAttributes = types.SelectAllProjectedAttributes
	SelectSpecificAttributes     = types.SelectSpecificAttributes
	SelectCount                  = types.SelectCount
)

type enumeration[T ~string] interface {
	~string
	Values() []T
}

// checkEnum returns an error if v is not one of T's literals.
// The empty string means "unset" and is always accepted.
func checkEnum[T enumeration[T]](field string, v T) error {
	if v == "" || slices.Contains(v.Values(), v) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (want one of %v)", ErrInvalidEnum, field, string(v), v.Values())
}

func parseEnum[T enumeration[T]](field, s string) (T, error) {
	v := T(s)
	if s == "" {
		return v, fmt.Errorf("%w: empty %s", ErrInvalidEnum, field)
	}
	if err := checkEnum(field, v); err != nil {
		return "", err
	}
	return v, nil
}

// ParseReturnValue validates a ReturnValues literal.
func ParseReturnValue(s string) (ReturnValue, error) {
	return parseEnum[ReturnValue]("ReturnValues", s)
}

// ParseReturnConsumedCapacity validates a ReturnConsumedCapacity literal.
func ParseReturnConsumedCapacity(s string) (ReturnConsumedCapacity, error) {
	return parseEnum[ReturnConsumedCapacity]("ReturnConsumedCapacity", s)
}

// ParseReturnItemCollectionMetrics validates a ReturnItemCollectionMetrics literal.
func ParseReturnItemCollectionMetrics(s string) (ReturnItemCollectionMetrics, error) {
	return parseEnum[ReturnItemCollectionMetrics]("ReturnItemCollectionMetrics", s)
}

// ParseReturnValuesOnConditionCheckFailure validates a ReturnValuesOnConditionCheckFailure literal.
func ParseReturnValuesOnConditionCheckFailure(s string) (ReturnValuesOnConditionCheckFailure, error) {
	return parseEnum[ReturnValuesOnConditionCheckFailure]("ReturnValuesOnConditionCheckFailure", s)
}

// ParseConditionalOperator validates a ConditionalOperator literal.
func ParseConditionalOperator(s string) (ConditionalOperator, error) {
	return parseEnum[ConditionalOperator]("ConditionalOperator", s)
}

// ParseAttributeAction validates an update Action literal.
func ParseAttributeAction(s string) (AttributeAction, error) {
	return parseEnum[AttributeAction]("Action", s)
}

// ParseComparisonOperator validates a ComparisonOperator literal.
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	return parseEnum[ComparisonOperator]("ComparisonOperator", s)
}

// ParseSelect validates a Select literal.
func ParseSelect(s string) (Select, error) {
	return parseEnum[Select]("Select", s)
}
