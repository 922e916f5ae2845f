// Package attribute provides the key/value attribute model shared by spans,
// metric points, resources and log records.
package attribute

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type identifies the kind of value held by a Value.
type Type int

const (
	INVALID Type = iota
	BOOL
	INT64
	FLOAT64
	STRING
	BOOLSLICE
	INT64SLICE
	FLOAT64SLICE
	STRINGSLICE
)

// Key is an attribute name. Keys must be non-empty per the data model.
type Key string

// Value is a tagged union over the value types the data model allows:
// string, bool, int64, double, or a homogeneous slice of one of those.
type Value struct {
	vtype    Type
	numeric  uint64
	stringly string
	slice    interface{}
}

// KeyValue is a single attribute.
type KeyValue struct {
	Key   Key
	Value Value
}

func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{vtype: BOOL, numeric: n}
}

func Int64Value(v int64) Value { return Value{vtype: INT64, numeric: uint64(v)} }

func Float64Value(v float64) Value {
	return Value{vtype: FLOAT64, numeric: floatBits(v)}
}

func StringValue(v string) Value { return Value{vtype: STRING, stringly: v} }

func BoolSliceValue(v []bool) Value {
	cp := make([]bool, len(v))
	copy(cp, v)
	return Value{vtype: BOOLSLICE, slice: cp}
}

func Int64SliceValue(v []int64) Value {
	cp := make([]int64, len(v))
	copy(cp, v)
	return Value{vtype: INT64SLICE, slice: cp}
}

func Float64SliceValue(v []float64) Value {
	cp := make([]float64, len(v))
	copy(cp, v)
	return Value{vtype: FLOAT64SLICE, slice: cp}
}

func StringSliceValue(v []string) Value {
	cp := make([]string, len(v))
	copy(cp, v)
	return Value{vtype: STRINGSLICE, slice: cp}
}

func Bool(k string, v bool) KeyValue          { return KeyValue{Key(k), BoolValue(v)} }
func Int64(k string, v int64) KeyValue        { return KeyValue{Key(k), Int64Value(v)} }
func Int(k string, v int) KeyValue            { return KeyValue{Key(k), Int64Value(int64(v))} }
func Float64(k string, v float64) KeyValue    { return KeyValue{Key(k), Float64Value(v)} }
func String(k string, v string) KeyValue      { return KeyValue{Key(k), StringValue(v)} }
func BoolSlice(k string, v []bool) KeyValue   { return KeyValue{Key(k), BoolSliceValue(v)} }
func Int64Slice(k string, v []int64) KeyValue { return KeyValue{Key(k), Int64SliceValue(v)} }
func Float64Slice(k string, v []float64) KeyValue {
	return KeyValue{Key(k), Float64SliceValue(v)}
}
func StringSlice(k string, v []string) KeyValue { return KeyValue{Key(k), StringSliceValue(v)} }

func (v Value) Type() Type { return v.vtype }

func (v Value) AsBool() bool       { return v.numeric == 1 }
func (v Value) AsInt64() int64     { return int64(v.numeric) }
func (v Value) AsFloat64() float64 { return bitsFloat(v.numeric) }
func (v Value) AsString() string   { return v.stringly }

func (v Value) AsBoolSlice() []bool {
	s, _ := v.slice.([]bool)
	return s
}
func (v Value) AsInt64Slice() []int64 {
	s, _ := v.slice.([]int64)
	return s
}
func (v Value) AsFloat64Slice() []float64 {
	s, _ := v.slice.([]float64)
	return s
}
func (v Value) AsStringSlice() []string {
	s, _ := v.slice.([]string)
	return s
}

// AsInterface returns the underlying value as an interface{}, useful for
// generic serialization paths (e.g. the OTLP transform).
func (v Value) AsInterface() interface{} {
	switch v.vtype {
	case BOOL:
		return v.AsBool()
	case INT64:
		return v.AsInt64()
	case FLOAT64:
		return v.AsFloat64()
	case STRING:
		return v.AsString()
	case BOOLSLICE:
		return v.AsBoolSlice()
	case INT64SLICE:
		return v.AsInt64Slice()
	case FLOAT64SLICE:
		return v.AsFloat64Slice()
	case STRINGSLICE:
		return v.AsStringSlice()
	default:
		return nil
	}
}

// Emit renders the value as a human-readable string, used by diagnostic
// logging and canonical-key construction.
func (v Value) Emit() string {
	switch v.vtype {
	case BOOL:
		return strconv.FormatBool(v.AsBool())
	case INT64:
		return strconv.FormatInt(v.AsInt64(), 10)
	case FLOAT64:
		return strconv.FormatFloat(v.AsFloat64(), 'g', -1, 64)
	case STRING:
		return v.AsString()
	case BOOLSLICE, INT64SLICE, FLOAT64SLICE, STRINGSLICE:
		return fmt.Sprintf("%v", v.slice)
	default:
		return "<invalid>"
	}
}

func (k Key) String() string { return string(k) }

func floatBits(f float64) uint64 { return math.Float64bits(f) }
func bitsFloat(u uint64) float64 { return math.Float64frombits(u) }

// Emit renders a slice of KeyValue as a stable "k=v,k=v" debug string.
func Emit(kvs []KeyValue) string {
	var b strings.Builder
	for i, kv := range kvs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(kv.Key))
		b.WriteByte('=')
		b.WriteString(kv.Value.Emit())
	}
	return b.String()
}
