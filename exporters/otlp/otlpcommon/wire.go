// Package otlpcommon implements the wire-format and transport concerns
// shared by the trace/metric/log OTLP exporters (§4.8): protobuf
// encoding of the OTLP proto v1 messages, resource/scope grouping, and
// the exponential-backoff-with-full-jitter retry policy.
//
// There is no generated protobuf stub in this module (protoc is not run
// as part of this build), so messages are hand-encoded directly against
// the wire format using google.golang.org/protobuf/encoding/protowire,
// against the field numbers published in opentelemetry-proto v1.
package otlpcommon

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// appendVarintField appends a (tag, varint) pair for field num.
func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendBoolField appends a bool field, encoded as a varint 0/1.
func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	n := uint64(0)
	if v {
		n = 1
	}
	return appendVarintField(b, num, n)
}

// appendInt64Field appends a signed int64 field encoded as a plain
// (non-zigzag) varint, matching proto3 `int64`.
func appendInt64Field(b []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(b, num, uint64(v))
}

// appendFixed64Field appends a fixed64-encoded field, used for `double`.
func appendFixed64Field(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, v)
}

// appendDoubleField appends a proto3 `double` field.
func appendDoubleField(b []byte, num protowire.Number, v float64) []byte {
	return appendFixed64Field(b, num, math.Float64bits(v))
}

// appendStringField appends a length-delimited string field.
func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendBytesField appends a length-delimited bytes field, used both for
// raw `bytes` fields (trace/span IDs) and for embedded messages (the
// caller passes the message's own already-encoded bytes).
func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendMessageField embeds a nested message's pre-encoded bytes as
// field num.
func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	if msg == nil {
		return b
	}
	return appendBytesField(b, num, msg)
}

