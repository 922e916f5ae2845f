package otlpcommon

import (
	"github.com/signalcore/otelsdk/attribute"
	"google.golang.org/protobuf/encoding/protowire"
)

// AnyValue field numbers (opentelemetry.proto.common.v1.AnyValue oneof).
const (
	fieldAnyValueString = 1
	fieldAnyValueBool   = 2
	fieldAnyValueInt    = 3
	fieldAnyValueDouble = 4
	fieldAnyValueArray  = 5
	fieldAnyValueKvlist = 6
	fieldAnyValueBytes  = 7
)

// ArrayValue field number.
const fieldArrayValues = 1

// KeyValue field numbers.
const (
	fieldKeyValueKey   = 1
	fieldKeyValueValue = 2
)

// EncodeAnyValue encodes an attribute.Value as an OTLP AnyValue message.
func EncodeAnyValue(v attribute.Value) []byte {
	var b []byte
	switch v.Type() {
	case attribute.BOOL:
		b = appendBoolField(b, fieldAnyValueBool, v.AsBool())
	case attribute.INT64:
		b = appendInt64Field(b, fieldAnyValueInt, v.AsInt64())
	case attribute.FLOAT64:
		b = appendDoubleField(b, fieldAnyValueDouble, v.AsFloat64())
	case attribute.STRING:
		b = appendStringField(b, fieldAnyValueString, v.AsString())
	case attribute.BOOLSLICE:
		b = appendMessageField(b, fieldAnyValueArray, encodeArray(boolValuesToAny(v.AsBoolSlice())))
	case attribute.INT64SLICE:
		b = appendMessageField(b, fieldAnyValueArray, encodeArray(int64ValuesToAny(v.AsInt64Slice())))
	case attribute.FLOAT64SLICE:
		b = appendMessageField(b, fieldAnyValueArray, encodeArray(float64ValuesToAny(v.AsFloat64Slice())))
	case attribute.STRINGSLICE:
		b = appendMessageField(b, fieldAnyValueArray, encodeArray(stringValuesToAny(v.AsStringSlice())))
	}
	return b
}

func boolValuesToAny(vs []bool) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = EncodeAnyValue(attribute.BoolValue(v))
	}
	return out
}

func int64ValuesToAny(vs []int64) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = EncodeAnyValue(attribute.Int64Value(v))
	}
	return out
}

func float64ValuesToAny(vs []float64) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = EncodeAnyValue(attribute.Float64Value(v))
	}
	return out
}

func stringValuesToAny(vs []string) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = EncodeAnyValue(attribute.StringValue(v))
	}
	return out
}

func encodeArray(values [][]byte) []byte {
	var b []byte
	for _, v := range values {
		b = appendMessageField(b, fieldArrayValues, v)
	}
	return b
}

// EncodeKeyValue encodes a single attribute.KeyValue as an OTLP KeyValue
// message.
func EncodeKeyValue(kv attribute.KeyValue) []byte {
	var b []byte
	b = appendStringField(b, fieldKeyValueKey, string(kv.Key))
	b = appendMessageField(b, fieldKeyValueValue, EncodeAnyValue(kv.Value))
	return b
}

// EncodeAttributes encodes kvs as a sequence of (field num, KeyValue
// message) pairs, ready to append under whichever repeated field number
// the embedding message uses for its attributes.
func EncodeAttributes(b []byte, num protowire.Number, kvs []attribute.KeyValue) []byte {
	for _, kv := range kvs {
		b = appendMessageField(b, num, EncodeKeyValue(kv))
	}
	return b
}
