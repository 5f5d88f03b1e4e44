package dynamo

import (
	"maps"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Capacity is the throughput consumed on a table or index.
type Capacity struct {
	// Total capacity units consumed.
	CapacityUnits *float64 `json:"CapacityUnits,omitempty"`
	// Read capacity units consumed.
	ReadCapacityUnits *float64 `json:"ReadCapacityUnits,omitempty"`
	// Write capacity units consumed.
	WriteCapacityUnits *float64 `json:"WriteCapacityUnits,omitempty"`
}

// ConsumedCapacity is the capacity accounting DynamoDB attaches to a response
// when ReturnConsumedCapacity is INDEXES or TOTAL.
type ConsumedCapacity struct {
	TableName          string   `json:"TableName,omitempty"`
	CapacityUnits      *float64 `json:"CapacityUnits,omitempty"`
	ReadCapacityUnits  *float64 `json:"ReadCapacityUnits,omitempty"`
	WriteCapacityUnits *float64 `json:"WriteCapacityUnits,omitempty"`

	// Only present when ReturnConsumedCapacity is INDEXES.
	Table                  *Capacity           `json:"Table,omitempty"`
	LocalSecondaryIndexes  map[string]Capacity `json:"LocalSecondaryIndexes,omitzero"`
	GlobalSecondaryIndexes map[string]Capacity `json:"GlobalSecondaryIndexes,omitzero"`
}

// Total returns the total capacity units consumed, or zero if unknown.
func (cc *ConsumedCapacity) Total() float64 {
	if cc == nil || cc.CapacityUnits == nil {
		return 0
	}
	return *cc.CapacityUnits
}

// Add merges other into cc, summing every unit count.
// The table name is taken from other if cc has none.
func (cc *ConsumedCapacity) Add(other *ConsumedCapacity) {
	if cc == nil || other == nil {
		return
	}
	if cc.TableName == "" {
		cc.TableName = other.TableName
	}
	cc.CapacityUnits = addUnits(cc.CapacityUnits, other.CapacityUnits)
	cc.ReadCapacityUnits = addUnits(cc.ReadCapacityUnits, other.ReadCapacityUnits)
	cc.WriteCapacityUnits = addUnits(cc.WriteCapacityUnits, other.WriteCapacityUnits)
	if other.Table != nil {
		if cc.Table == nil {
			cc.Table = &Capacity{}
		}
		cc.Table.add(*other.Table)
	}
	cc.LocalSecondaryIndexes = addIndexCapacity(cc.LocalSecondaryIndexes, other.LocalSecondaryIndexes)
	cc.GlobalSecondaryIndexes = addIndexCapacity(cc.GlobalSecondaryIndexes, other.GlobalSecondaryIndexes)
}

func (c *Capacity) add(other Capacity) {
	c.CapacityUnits = addUnits(c.CapacityUnits, other.CapacityUnits)
	c.ReadCapacityUnits = addUnits(c.ReadCapacityUnits, other.ReadCapacityUnits)
	c.WriteCapacityUnits = addUnits(c.WriteCapacityUnits, other.WriteCapacityUnits)
}

func addUnits(a, b *float64) *float64 {
	switch {
	case b == nil:
		return a
	case a == nil:
		v := *b
		return &v
	}
	v := *a + *b
	return &v
}

func addIndexCapacity(dst, src map[string]Capacity) map[string]Capacity {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]Capacity, len(src))
	}
	for name, c := range src {
		sum := dst[name]
		sum.add(c)
		dst[name] = sum
	}
	return dst
}

func (cc *ConsumedCapacity) clone() *ConsumedCapacity {
	if cc == nil {
		return nil
	}
	c := *cc
	if cc.Table != nil {
		t := *cc.Table
		c.Table = &t
	}
	c.LocalSecondaryIndexes = maps.Clone(cc.LocalSecondaryIndexes)
	c.GlobalSecondaryIndexes = maps.Clone(cc.GlobalSecondaryIndexes)
	return &c
}

// ItemCollectionMetrics describes the item collection touched by a write to a
// table with local secondary indexes.
type ItemCollectionMetrics struct {
	// The partition key value of the item collection.
	ItemCollectionKey Item `json:"ItemCollectionKey,omitzero"`
	// Lower and upper bound of the collection's estimated size, in gigabytes.
	SizeEstimateRangeGB []float64 `json:"SizeEstimateRangeGB,omitzero"`
}

// WithSizeEstimateRangeGB appends bounds to the size estimate.
func (m *ItemCollectionMetrics) WithSizeEstimateRangeGB(bounds ...float64) *ItemCollectionMetrics {
	if m.SizeEstimateRangeGB == nil {
		m.SizeEstimateRangeGB = make([]float64, 0, len(bounds))
	}
	m.SizeEstimateRangeGB = append(m.SizeEstimateRangeGB, bounds...)
	return m
}

// SetSizeEstimateRangeGB replaces the size estimate with a copy of bounds.
// A nil slice clears it.
func (m *ItemCollectionMetrics) SetSizeEstimateRangeGB(bounds []float64) {
	m.SizeEstimateRangeGB = cloneList(bounds)
}

// AddItemCollectionKeyEntry adds one attribute of the collection key.
// It fails with ErrDuplicateKey if name is already present.
func (m *ItemCollectionMetrics) AddItemCollectionKeyEntry(name string, value AttributeValue) error {
	return addEntry(&m.ItemCollectionKey, "ItemCollectionKey", name, value)
}

// ClearItemCollectionKeyEntries removes the collection key.
func (m *ItemCollectionMetrics) ClearItemCollectionKeyEntries() {
	m.ItemCollectionKey = nil
}

func (m *ItemCollectionMetrics) clone() *ItemCollectionMetrics {
	if m == nil {
		return nil
	}
	return &ItemCollectionMetrics{
		ItemCollectionKey:   maps.Clone(m.ItemCollectionKey),
		SizeEstimateRangeGB: cloneList(m.SizeEstimateRangeGB),
	}
}

func capacityFromSDK(c types.Capacity) Capacity {
	return Capacity{
		CapacityUnits:      c.CapacityUnits,
		ReadCapacityUnits:  c.ReadCapacityUnits,
		WriteCapacityUnits: c.WriteCapacityUnits,
	}
}

func indexCapacityFromSDK(m map[string]types.Capacity) map[string]Capacity {
	if m == nil {
		return nil
	}
	out := make(map[string]Capacity, len(m))
	for name, c := range m {
		out[name] = capacityFromSDK(c)
	}
	return out
}

func consumedCapacityFromSDK(cc *types.ConsumedCapacity) *ConsumedCapacity {
	if cc == nil {
		return nil
	}
	out := &ConsumedCapacity{
		CapacityUnits:          cc.CapacityUnits,
		ReadCapacityUnits:      cc.ReadCapacityUnits,
		WriteCapacityUnits:     cc.WriteCapacityUnits,
		LocalSecondaryIndexes:  indexCapacityFromSDK(cc.LocalSecondaryIndexes),
		GlobalSecondaryIndexes: indexCapacityFromSDK(cc.GlobalSecondaryIndexes),
	}
	if cc.TableName != nil {
		out.TableName = *cc.TableName
	}
	if cc.Table != nil {
		t := capacityFromSDK(*cc.Table)
		out.Table = &t
	}
	return out
}

func itemCollectionMetricsFromSDK(m *types.ItemCollectionMetrics) *ItemCollectionMetrics {
	if m == nil {
		return nil
	}
	return &ItemCollectionMetrics{
		ItemCollectionKey:   m.ItemCollectionKey,
		SizeEstimateRangeGB: m.SizeEstimateRangeGB,
	}
}

func cloneList[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
