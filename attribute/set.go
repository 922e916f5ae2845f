package attribute

import (
	"sort"
	"strings"
)

// Set is a canonical, order-insensitive attribute-set: two sets built from
// the same key/value pairs in different insertion orders produce the same
// Set and the same Equivalent key, so they collide to the same bucket in
// per-attribute-set storage (§4.5, §9 "attribute-keyed storage").
type Set struct {
	sorted []KeyValue
	key    string
}

// Distinct is an opaque, comparable identity for a Set. Two Sets with the
// same members (regardless of construction order) have an equal Distinct,
// so it can key a Go map directly.
type Distinct struct {
	key string
}

// NewSet builds a canonical Set from kvs, deduplicating by key (last value
// for a repeated key wins) and sorting by key for a stable encoding.
func NewSet(kvs ...KeyValue) Set {
	byKey := make(map[Key]Value, len(kvs))
	order := make([]Key, 0, len(kvs))
	for _, kv := range kvs {
		if kv.Key == "" {
			continue
		}
		if _, ok := byKey[kv.Key]; !ok {
			order = append(order, kv.Key)
		}
		byKey[kv.Key] = kv.Value
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	sorted := make([]KeyValue, 0, len(order))
	for _, k := range order {
		sorted = append(sorted, KeyValue{Key: k, Value: byKey[k]})
	}
	return Set{sorted: sorted, key: encodeKey(sorted)}
}

func encodeKey(sorted []KeyValue) string {
	var b strings.Builder
	for _, kv := range sorted {
		b.WriteString(string(kv.Key))
		b.WriteByte('=')
		b.WriteByte(byte(kv.Value.Type()))
		b.WriteByte(':')
		b.WriteString(kv.Value.Emit())
		b.WriteByte(';')
	}
	return b.String()
}

// ToSlice returns the sorted, deduplicated key/value pairs.
func (s Set) ToSlice() []KeyValue {
	out := make([]KeyValue, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Len returns the number of distinct attributes in the set.
func (s Set) Len() int { return len(s.sorted) }

// Equivalent returns the Distinct identity used as a map key.
func (s Set) Equivalent() Distinct { return Distinct{key: s.key} }

// Value looks up a key in the set.
func (s Set) Value(k Key) (Value, bool) {
	for _, kv := range s.sorted {
		if kv.Key == k {
			return kv.Value, true
		}
	}
	return Value{}, false
}
