package dynamo

import (
	"maps"
)

// KeyType is the scalar type of a hash or range key attribute.
type KeyType string

// Key types for table and index hash/range keys.
const (
	BinaryType KeyType = "B"
	StringType KeyType = "S"
	NumberType KeyType = "N"
	NoneType   KeyType = ""
)

// KeyTypeOf returns the key type of av, or NoneType if av cannot be a key attribute.
func KeyTypeOf(av AttributeValue) KeyType {
	switch shapeOf(av) {
	case shapeS:
		return StringType
	case shapeN:
		return NumberType
	case shapeB:
		return BinaryType
	}
	return NoneType
}

// KeyBuilder accumulates a primary key.
//
//	key, err := dynamo.NewKeyBuilder().
//		Key("UserID", 613).
//		Key("Time", "2015-12-04").
//		Build()
type KeyBuilder struct {
	key Item
	err error
}

// NewKeyBuilder returns an empty key builder.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

// Key adds the attribute name with the given value, converted with Marshal.
// Strings become S, booleans BOOL, and integers and floats N.
// A name that is already present is an error and the first value is kept.
func (kb *KeyBuilder) Key(name string, value any) *KeyBuilder {
	av, ok := value.(AttributeValue)
	if !ok {
		var err error
		if av, err = Marshal(value); err != nil {
			kb.setError(err)
			return kb
		}
	}
	kb.setError(addEntry(&kb.key, "key", name, av))
	return kb
}

// Build returns a copy of the accumulated key.
// The builder can keep being used afterwards.
func (kb *KeyBuilder) Build() (Item, error) {
	if kb.err != nil {
		return nil, kb.err
	}
	if kb.key == nil {
		return Item{}, nil
	}
	return maps.Clone(kb.key), nil
}

func (kb *KeyBuilder) setError(err error) {
	if kb.err == nil {
		kb.err = err
	}
}
