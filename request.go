package dynamo

import (
	"fmt"
	"maps"
	"slices"
)

// KeyEntry is one attribute of a primary key.
type KeyEntry struct {
	Name  string
	Value AttributeValue
}

// HashKey returns a key entry for the hash key (a.k.a. partition key).
func HashKey(name string, value AttributeValue) *KeyEntry {
	return &KeyEntry{Name: name, Value: value}
}

// RangeKey returns a key entry for the range key (a.k.a. sort key).
func RangeKey(name string, value AttributeValue) *KeyEntry {
	return &KeyEntry{Name: name, Value: value}
}

// keyFromEntries builds a one or two attribute primary key.
// The hash entry is required; a nil range entry yields a hash-only key.
func keyFromEntries(hash, rng *KeyEntry) (Item, error) {
	if hash == nil || hash.Value == nil {
		return nil, ErrNilHashKey
	}
	key := Item{hash.Name: hash.Value}
	if rng != nil {
		if rng.Value == nil {
			return nil, fmt.Errorf("dynamo: range key %q has no value", rng.Name)
		}
		if _, dup := key[rng.Name]; dup {
			return nil, duplicateKeyErr("Key", rng.Name)
		}
		key[rng.Name] = rng.Value
	}
	return key, nil
}

// addEntry inserts key into *m, creating the map on first use.
// An existing key is left untouched and reported as a duplicate.
func addEntry[M ~map[string]V, V any](m *M, field, key string, value V) error {
	if *m == nil {
		*m = make(M)
	}
	if _, exists := (*m)[key]; exists {
		return duplicateKeyErr(field, key)
	}
	(*m)[key] = value
	return nil
}

func ptrOf[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = maps.Clone(item)
	}
	return out
}

// checkEntries returns the error of the first invalid entry of m, in key order.
func checkEntries[V interface{ check() error }](m map[string]V) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := m[k].check(); err != nil {
			return err
		}
	}
	return nil
}
