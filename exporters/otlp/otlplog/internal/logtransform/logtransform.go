// Package logtransform assembles OTLP ExportLogsServiceRequest bytes
// from sdk/log.Record, mirroring tracetransform/metrictransform's shape
// (§4.8).
package logtransform

import (
	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/resource"
	sdklog "github.com/signalcore/otelsdk/sdk/log"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/signalcore/otelsdk/exporters/otlp/otlpcommon"
)

// ExportLogsServiceRequest field number.
const fieldRequestResourceLogs = 1

// ResourceLogs / ScopeLogs field numbers.
const (
	fieldResourceLogsResource  = 1
	fieldResourceLogsScopeLogs = 2

	fieldScopeLogsScope      = 1
	fieldScopeLogsLogRecords = 2
)

// LogRecord message field numbers (opentelemetry.proto.logs.v1.LogRecord).
const (
	fieldLogRecordTimeUnixNano         = 1
	fieldLogRecordObservedTimeUnixNano = 11
	fieldLogRecordSeverityNumber       = 2
	fieldLogRecordSeverityText         = 3
	fieldLogRecordBody                 = 5
	fieldLogRecordAttributes           = 6
	fieldLogRecordDroppedAttrCount     = 7
	fieldLogRecordTraceID              = 9
	fieldLogRecordSpanID               = 10
)

// EncodeRequest builds a complete ExportLogsServiceRequest, bucketing
// records first by Resource identity then by InstrumentationScope.
func EncodeRequest(records []sdklog.Record) []byte {
	groups := otlpcommon.GroupByResourceAndScope(
		records,
		func(r sdklog.Record) *resource.Resource { return r.Resource },
		func(r sdklog.Record) otlpcommon.Scope {
			s := r.InstrumentationScope
			return otlpcommon.Scope{Name: s.Name, Version: s.Version, SchemaURL: s.SchemaURL}
		},
	)

	var b []byte
	for _, rg := range groups {
		var rb []byte
		rb = protowire.AppendTag(rb, fieldResourceLogsResource, protowire.BytesType)
		rb = protowire.AppendBytes(rb, otlpcommon.EncodeResource(rg.Resource))

		for _, sg := range rg.Scopes {
			var sb []byte
			sb = protowire.AppendTag(sb, fieldScopeLogsScope, protowire.BytesType)
			sb = protowire.AppendBytes(sb, otlpcommon.EncodeScope(sg.Scope.Name, sg.Scope.Version, nil))
			for _, rec := range sg.Records {
				sb = protowire.AppendTag(sb, fieldScopeLogsLogRecords, protowire.BytesType)
				sb = protowire.AppendBytes(sb, EncodeRecord(rec))
			}
			rb = protowire.AppendTag(rb, fieldResourceLogsScopeLogs, protowire.BytesType)
			rb = protowire.AppendBytes(rb, sb)
		}

		b = protowire.AppendTag(b, fieldRequestResourceLogs, protowire.BytesType)
		b = protowire.AppendBytes(b, rb)
	}
	return b
}

// EncodeRecord encodes a single Record as an OTLP LogRecord message.
func EncodeRecord(r sdklog.Record) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldLogRecordTimeUnixNano, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, uint64(r.Timestamp.UnixNano()))

	if !r.ObservedTimestamp.IsZero() {
		b = protowire.AppendTag(b, fieldLogRecordObservedTimeUnixNano, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, uint64(r.ObservedTimestamp.UnixNano()))
	}

	if r.SeverityNumber != 0 {
		b = protowire.AppendTag(b, fieldLogRecordSeverityNumber, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.SeverityNumber))
	}
	if r.SeverityText != "" {
		b = protowire.AppendTag(b, fieldLogRecordSeverityText, protowire.BytesType)
		b = protowire.AppendString(b, r.SeverityText)
	}

	if r.Body.Type() != attribute.INVALID {
		b = protowire.AppendTag(b, fieldLogRecordBody, protowire.BytesType)
		b = protowire.AppendBytes(b, otlpcommon.EncodeAnyValue(r.Body))
	}

	b = otlpcommon.EncodeAttributes(b, fieldLogRecordAttributes, r.Attributes)
	if r.DroppedAttributes > 0 {
		b = protowire.AppendTag(b, fieldLogRecordDroppedAttrCount, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.DroppedAttributes))
	}

	if r.TraceID.IsValid() {
		b = protowire.AppendTag(b, fieldLogRecordTraceID, protowire.BytesType)
		traceID := r.TraceID
		b = protowire.AppendBytes(b, traceID[:])
	}
	if r.SpanID.IsValid() {
		b = protowire.AppendTag(b, fieldLogRecordSpanID, protowire.BytesType)
		spanID := r.SpanID
		b = protowire.AppendBytes(b, spanID[:])
	}

	return b
}
