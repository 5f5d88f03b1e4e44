package dynamo

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ScanRequest is a request to read every item in a table or index.
// See: http://docs.aws.amazon.com/amazondynamodb/latest/APIReference/API_Scan.html
type ScanRequest struct {
	tableName string
	index     string
	startKey  Item

	attributesToGet []string
	limit           *int32
	selectAttrs     Select
	scanFilter      map[string]Condition
	condOp          ConditionalOperator
	returnCC        ReturnConsumedCapacity
	segment         *int32
	totalSegments   *int32
	consistent      *bool

	projection string
	filter     string
	subber

	stickyErr
}

// NewScanRequest creates a new request to scan table.
func NewScanRequest(table string) *ScanRequest {
	return (&ScanRequest{}).WithTableName(table)
}

// TableName returns the name of the table to scan.
func (r *ScanRequest) TableName() string { return r.tableName }

// WithTableName sets the table to scan.
func (r *ScanRequest) WithTableName(name string) *ScanRequest {
	r.tableName = name
	return r
}

// IndexName returns the name of the index to scan, if any.
func (r *ScanRequest) IndexName() string { return r.index }

// WithIndexName makes this request scan a secondary index instead of the table.
func (r *ScanRequest) WithIndexName(name string) *ScanRequest {
	r.index = name
	return r
}

// ExclusiveStartKey returns a copy of the key this scan starts after.
func (r *ScanRequest) ExclusiveStartKey() Item { return maps.Clone(r.startKey) }

// WithExclusiveStartKey makes this scan continue from a previous one.
// Use a ScanResult's LastEvaluatedKey.
func (r *ScanRequest) WithExclusiveStartKey(key Item) *ScanRequest {
	r.startKey = maps.Clone(key)
	return r
}

// AddExclusiveStartKeyEntry adds one attribute to the start key.
// Adding a name twice records ErrDuplicateKey and keeps the first value.
func (r *ScanRequest) AddExclusiveStartKeyEntry(name string, value AttributeValue) *ScanRequest {
	r.setError(addEntry(&r.startKey, "ExclusiveStartKey", name, value))
	return r
}

// ClearExclusiveStartKeyEntries removes the start key, so the scan starts from the beginning.
func (r *ScanRequest) ClearExclusiveStartKeyEntries() *ScanRequest {
	r.startKey = nil
	return r
}

// AttributesToGet returns a copy of the legacy attribute list.
func (r *ScanRequest) AttributesToGet() []string { return cloneList(r.attributesToGet) }

// WithAttributesToGet appends names to the legacy attribute list.
func (r *ScanRequest) WithAttributesToGet(names ...string) *ScanRequest {
	if r.attributesToGet == nil {
		r.attributesToGet = make([]string, 0, len(names))
	}
	r.attributesToGet = append(r.attributesToGet, names...)
	return r
}

// SetAttributesToGet replaces the legacy attribute list with a copy of names.
// A nil slice unsets it.
func (r *ScanRequest) SetAttributesToGet(names []string) *ScanRequest {
	r.attributesToGet = cloneList(names)
	return r
}

// Limit returns the maximum number of items to evaluate per page, or nil if unset.
func (r *ScanRequest) Limit() *int32 {
	if r.limit == nil {
		return nil
	}
	n := *r.limit
	return &n
}

// WithLimit sets the maximum number of items to evaluate per page.
// Note that DynamoDB also limits each page to 1MB.
func (r *ScanRequest) WithLimit(limit int32) *ScanRequest {
	if err := checkLimit(limit); err != nil {
		r.setError(err)
		return r
	}
	r.limit = &limit
	return r
}

// Select returns which attributes the scan returns.
func (r *ScanRequest) Select() Select { return r.selectAttrs }

// WithSelect sets which attributes the scan returns.
func (r *ScanRequest) WithSelect(v Select) *ScanRequest {
	if err := checkEnum("Select", v); err != nil {
		r.setError(err)
		return r
	}
	r.selectAttrs = v
	return r
}

// WithSelectString parses and sets which attributes the scan returns.
func (r *ScanRequest) WithSelectString(s string) *ScanRequest {
	v, err := ParseSelect(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithSelect(v)
}

// ScanFilter returns a copy of the legacy filter conditions.
func (r *ScanRequest) ScanFilter() map[string]Condition { return maps.Clone(r.scanFilter) }

// WithScanFilter replaces the legacy filter conditions with a copy of filter.
func (r *ScanRequest) WithScanFilter(filter map[string]Condition) *ScanRequest {
	if err := checkEntries(filter); err != nil {
		r.setError(err)
		return r
	}
	r.scanFilter = maps.Clone(filter)
	return r
}

// AddScanFilterEntry adds a legacy filter condition on one attribute.
// Adding a name twice records ErrDuplicateKey and keeps the first condition.
func (r *ScanRequest) AddScanFilterEntry(name string, cond Condition) *ScanRequest {
	if err := cond.check(); err != nil {
		r.setError(err)
		return r
	}
	r.setError(addEntry(&r.scanFilter, "ScanFilter", name, cond))
	return r
}

// ClearScanFilterEntries removes all legacy filter conditions.
func (r *ScanRequest) ClearScanFilterEntries() *ScanRequest {
	r.scanFilter = nil
	return r
}

// ConditionalOperator returns the operator joining the legacy filter conditions.
func (r *ScanRequest) ConditionalOperator() ConditionalOperator { return r.condOp }

// WithConditionalOperator sets the operator joining the legacy filter conditions.
func (r *ScanRequest) WithConditionalOperator(op ConditionalOperator) *ScanRequest {
	if err := checkEnum("ConditionalOperator", op); err != nil {
		r.setError(err)
		return r
	}
	r.condOp = op
	return r
}

// WithConditionalOperatorString parses and sets the operator joining the legacy filter conditions.
func (r *ScanRequest) WithConditionalOperatorString(s string) *ScanRequest {
	op, err := ParseConditionalOperator(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithConditionalOperator(op)
}

// ReturnConsumedCapacity returns the capacity reporting level.
func (r *ScanRequest) ReturnConsumedCapacity() ReturnConsumedCapacity { return r.returnCC }

// WithReturnConsumedCapacity sets the capacity reporting level.
func (r *ScanRequest) WithReturnConsumedCapacity(v ReturnConsumedCapacity) *ScanRequest {
	if err := checkEnum("ReturnConsumedCapacity", v); err != nil {
		r.setError(err)
		return r
	}
	r.returnCC = v
	return r
}

// WithReturnConsumedCapacityString parses and sets the capacity reporting level.
func (r *ScanRequest) WithReturnConsumedCapacityString(s string) *ScanRequest {
	v, err := ParseReturnConsumedCapacity(s)
	if err != nil {
		r.setError(err)
		return r
	}
	return r.WithReturnConsumedCapacity(v)
}

// Segment returns the segment this request scans and the total number of segments,
// or nils for an unsegmented scan.
func (r *ScanRequest) Segment() (segment, total *int32) {
	if r.segment == nil || r.totalSegments == nil {
		return nil, nil
	}
	s, t := *r.segment, *r.totalSegments
	return &s, &t
}

// WithSegment makes this request scan one segment of a parallel scan.
// Segments are numbered from 0 to total-1.
func (r *ScanRequest) WithSegment(segment, total int32) *ScanRequest {
	if err := checkSegment(segment, total); err != nil {
		r.setError(err)
		return r
	}
	r.segment, r.totalSegments = &segment, &total
	return r
}

func checkLimit(limit int32) error {
	if limit < 1 {
		return fmt.Errorf("dynamo: scan limit must be positive, got %d", limit)
	}
	return nil
}

func checkSegment(segment, total int32) error {
	if total < 1 || segment < 0 || segment >= total {
		return fmt.Errorf("dynamo: invalid scan segment %d of %d", segment, total)
	}
	return nil
}

// ConsistentRead returns the read consistency setting, or nil if unset.
func (r *ScanRequest) ConsistentRead() *bool {
	if r.consistent == nil {
		return nil
	}
	on := *r.consistent
	return &on
}

// WithConsistentRead will, if on is true, make this scan use a strongly consistent read.
// Scans are eventually consistent by default.
func (r *ScanRequest) WithConsistentRead(on bool) *ScanRequest {
	r.consistent = &on
	return r
}

// ProjectionExpression returns the projection expression.
func (r *ScanRequest) ProjectionExpression() string { return r.projection }

// WithProjectionExpression limits the returned attributes.
// The expression is sent as-is.
func (r *ScanRequest) WithProjectionExpression(expr string) *ScanRequest {
	r.projection = expr
	return r
}

// FilterExpression returns the filter expression.
func (r *ScanRequest) FilterExpression() string { return r.filter }

// WithFilterExpression sets an expression that all results will be evaluated against.
// The expression is sent as-is.
func (r *ScanRequest) WithFilterExpression(expr string) *ScanRequest {
	r.filter = expr
	return r
}

// ExpressionAttributeNames returns a copy of the name placeholders.
func (r *ScanRequest) ExpressionAttributeNames() map[string]string { return r.names() }

// WithExpressionAttributeNames replaces the name placeholders with a copy of names.
func (r *ScanRequest) WithExpressionAttributeNames(names map[string]string) *ScanRequest {
	r.nameExpr = maps.Clone(names)
	return r
}

// AddExpressionAttributeNamesEntry adds one name placeholder, such as "#n" → "Name".
// Adding a placeholder twice records ErrDuplicateKey and keeps the first name.
func (r *ScanRequest) AddExpressionAttributeNamesEntry(placeholder, name string) *ScanRequest {
	r.setError(r.addName(placeholder, name))
	return r
}

// ClearExpressionAttributeNamesEntries removes all name placeholders.
func (r *ScanRequest) ClearExpressionAttributeNamesEntries() *ScanRequest {
	r.nameExpr = nil
	return r
}

// ExpressionAttributeValues returns a copy of the value placeholders.
func (r *ScanRequest) ExpressionAttributeValues() Item { return r.values() }

// WithExpressionAttributeValues replaces the value placeholders with a copy of values.
func (r *ScanRequest) WithExpressionAttributeValues(values Item) *ScanRequest {
	r.valueExpr = maps.Clone(values)
	return r
}

// AddExpressionAttributeValuesEntry adds one value placeholder, such as ":v" → 42.
// Adding a placeholder twice records ErrDuplicateKey and keeps the first value.
func (r *ScanRequest) AddExpressionAttributeValuesEntry(placeholder string, value AttributeValue) *ScanRequest {
	r.setError(r.addValue(placeholder, value))
	return r
}

// ClearExpressionAttributeValuesEntries removes all value placeholders.
func (r *ScanRequest) ClearExpressionAttributeValuesEntries() *ScanRequest {
	r.valueExpr = nil
	return r
}

// WithExpression copies the filter, projection and placeholders produced by an expression builder.
func (r *ScanRequest) WithExpression(expr expression.Expression) *ScanRequest {
	if f := expr.Filter(); f != nil {
		r.filter = *f
	}
	if p := expr.Projection(); p != nil {
		r.projection = *p
	}
	r.setError(r.merge(expr))
	return r
}

// segmentOf returns a copy of this request restricted to one segment.
func (r *ScanRequest) segmentOf(segment, total int32) *ScanRequest {
	cp := *r
	cp.startKey = maps.Clone(r.startKey)
	return cp.WithSegment(segment, total)
}

type scanJSON struct {
	TableName                 string                 `json:"TableName,omitempty"`
	IndexName                 string                 `json:"IndexName,omitempty"`
	AttributesToGet           []string               `json:"AttributesToGet,omitzero"`
	Limit                     *int32                 `json:"Limit,omitempty"`
	Select                    Select                 `json:"Select,omitempty"`
	ScanFilter                map[string]Condition   `json:"ScanFilter,omitzero"`
	ConditionalOperator       ConditionalOperator    `json:"ConditionalOperator,omitempty"`
	ExclusiveStartKey         Item                   `json:"ExclusiveStartKey,omitzero"`
	ReturnConsumedCapacity    ReturnConsumedCapacity `json:"ReturnConsumedCapacity,omitempty"`
	TotalSegments             *int32                 `json:"TotalSegments,omitempty"`
	Segment                   *int32                 `json:"Segment,omitempty"`
	ProjectionExpression      string                 `json:"ProjectionExpression,omitempty"`
	FilterExpression          string                 `json:"FilterExpression,omitempty"`
	ExpressionAttributeNames  map[string]string      `json:"ExpressionAttributeNames,omitzero"`
	ExpressionAttributeValues Item                   `json:"ExpressionAttributeValues,omitzero"`
	ConsistentRead            *bool                  `json:"ConsistentRead,omitempty"`
}

// MarshalJSON encodes the request in the DynamoDB JSON protocol.
func (r *ScanRequest) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return json.Marshal(scanJSON{
		TableName:                 r.tableName,
		IndexName:                 r.index,
		AttributesToGet:           r.attributesToGet,
		Limit:                     r.limit,
		Select:                    r.selectAttrs,
		ScanFilter:                r.scanFilter,
		ConditionalOperator:       r.condOp,
		ExclusiveStartKey:         r.startKey,
		ReturnConsumedCapacity:    r.returnCC,
		TotalSegments:             r.totalSegments,
		Segment:                   r.segment,
		ProjectionExpression:      r.projection,
		FilterExpression:          r.filter,
		ExpressionAttributeNames:  r.nameExpr,
		ExpressionAttributeValues: r.valueExpr,
		ConsistentRead:            r.consistent,
	})
}

// UnmarshalJSON decodes a request in the DynamoDB JSON protocol.
// A name repeated within a JSON object keeps its last value, unlike the Add*Entry methods.
func (r *ScanRequest) UnmarshalJSON(data []byte) error {
	var w scanJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	for _, err := range []error{
		checkEnum("Select", w.Select),
		checkEnum("ConditionalOperator", w.ConditionalOperator),
		checkEnum("ReturnConsumedCapacity", w.ReturnConsumedCapacity),
	} {
		if err != nil {
			return err
		}
	}
	if w.Limit != nil {
		if err := checkLimit(*w.Limit); err != nil {
			return err
		}
	}
	switch {
	case w.Segment == nil && w.TotalSegments == nil:
	case w.Segment == nil || w.TotalSegments == nil:
		return errors.New("dynamo: Segment and TotalSegments must be set together")
	default:
		if err := checkSegment(*w.Segment, *w.TotalSegments); err != nil {
			return err
		}
	}
	*r = ScanRequest{
		tableName:       w.TableName,
		index:           w.IndexName,
		startKey:        w.ExclusiveStartKey,
		attributesToGet: w.AttributesToGet,
		limit:           w.Limit,
		selectAttrs:     w.Select,
		scanFilter:      w.ScanFilter,
		condOp:          w.ConditionalOperator,
		returnCC:        w.ReturnConsumedCapacity,
		segment:         w.Segment,
		totalSegments:   w.TotalSegments,
		consistent:      w.ConsistentRead,
		projection:      w.ProjectionExpression,
		filter:          w.FilterExpression,
		subber:          subber{nameExpr: w.ExpressionAttributeNames, valueExpr: w.ExpressionAttributeValues},
	}
	return nil
}

func (r *ScanRequest) input() *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                 ptrOf(r.tableName),
		IndexName:                 ptrOf(r.index),
		AttributesToGet:           r.attributesToGet,
		Limit:                     r.limit,
		Select:                    r.selectAttrs,
		ScanFilter:                sdkMap(r.scanFilter, Condition.sdk),
		ConditionalOperator:       r.condOp,
		ExclusiveStartKey:         r.startKey,
		ReturnConsumedCapacity:    r.returnCC,
		TotalSegments:             r.totalSegments,
		Segment:                   r.segment,
		ProjectionExpression:      ptrOf(r.projection),
		FilterExpression:          ptrOf(r.filter),
		ExpressionAttributeNames:  r.nameExpr,
		ExpressionAttributeValues: r.valueExpr,
		ConsistentRead:            r.consistent,
	}
}

// ScanResult is one page of a scan.
type ScanResult struct {
	items        []Item
	count        int32
	scannedCount int32
	lastKey      Item
	cc           *ConsumedCapacity
}

// Items returns a copy of the items in this page.
func (r *ScanResult) Items() []Item { return cloneItems(r.items) }

// WithItems sets the items and returns the result.
func (r *ScanResult) WithItems(items ...Item) *ScanResult {
	r.items = cloneItems(items)
	return r
}

// Count returns the number of items in this page, after filtering.
func (r *ScanResult) Count() int32 { return r.count }

// WithCount sets the item count and returns the result.
func (r *ScanResult) WithCount(n int32) *ScanResult {
	r.count = n
	return r
}

// ScannedCount returns the number of items evaluated for this page, before filtering.
func (r *ScanResult) ScannedCount() int32 { return r.scannedCount }

// WithScannedCount sets the scanned count and returns the result.
func (r *ScanResult) WithScannedCount(n int32) *ScanResult {
	r.scannedCount = n
	return r
}

// LastEvaluatedKey returns a copy of the key to continue this scan from,
// or nil if the scan is complete.
func (r *ScanResult) LastEvaluatedKey() Item { return maps.Clone(r.lastKey) }

// WithLastEvaluatedKey sets the continuation key and returns the result.
func (r *ScanResult) WithLastEvaluatedKey(key Item) *ScanResult {
	r.lastKey = maps.Clone(key)
	return r
}

// MayHaveMore reports whether another page may exist.
// False guarantees the scan is complete; true does not guarantee the next page has items.
func (r *ScanResult) MayHaveMore() bool { return r.lastKey != nil }

// ConsumedCapacity returns a copy of the capacity consumed, if it was requested.
func (r *ScanResult) ConsumedCapacity() *ConsumedCapacity { return r.cc.clone() }

// WithConsumedCapacity sets the capacity consumed and returns the result.
func (r *ScanResult) WithConsumedCapacity(cc *ConsumedCapacity) *ScanResult {
	r.cc = cc.clone()
	return r
}

// DecodeAll unmarshals the items in this page into out, which must be a pointer to a slice.
func (r *ScanResult) DecodeAll(out any) error {
	list := make([]map[string]AttributeValue, len(r.items))
	for i, item := range r.items {
		list[i] = item
	}
	if err := attributevalue.UnmarshalListOfMaps(list, out); err != nil {
		return fmt.Errorf("dynamo: unmarshal items: %w", err)
	}
	return nil
}

type scanResultJSON struct {
	Items            []Item            `json:"Items,omitzero"`
	Count            int32             `json:"Count"`
	ScannedCount     int32             `json:"ScannedCount"`
	LastEvaluatedKey Item              `json:"LastEvaluatedKey,omitzero"`
	ConsumedCapacity *ConsumedCapacity `json:"ConsumedCapacity,omitempty"`
}

// MarshalJSON encodes the result in the DynamoDB JSON protocol.
func (r *ScanResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(scanResultJSON{
		Items:            r.items,
		Count:            r.count,
		ScannedCount:     r.scannedCount,
		LastEvaluatedKey: r.lastKey,
		ConsumedCapacity: r.cc,
	})
}

// UnmarshalJSON decodes a result in the DynamoDB JSON protocol.
func (r *ScanResult) UnmarshalJSON(data []byte) error {
	var w scanResultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = ScanResult{
		items:        w.Items,
		count:        w.Count,
		scannedCount: w.ScannedCount,
		lastKey:      w.LastEvaluatedKey,
		cc:           w.ConsumedCapacity,
	}
	return nil
}

func scanResultFromSDK(out *dynamodb.ScanOutput) *ScanResult {
	items := make([]Item, len(out.Items))
	for i, item := range out.Items {
		items[i] = item
	}
	return &ScanResult{
		items:        items,
		count:        out.Count,
		scannedCount: out.ScannedCount,
		lastKey:      out.LastEvaluatedKey,
		cc:           consumedCapacityFromSDK(out.ConsumedCapacity),
	}
}
