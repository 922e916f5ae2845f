// Package tracetransform assembles OTLP ExportTraceServiceRequest bytes
// from sdk/trace.ReadOnlySpan, bucketing first by Resource identity then
// by InstrumentationScope (§4.8), matching the wire shapes implemented by
// otlpcommon.
package tracetransform

import (
	"github.com/signalcore/otelsdk/codes"
	"github.com/signalcore/otelsdk/resource"
	sdktraceinternal "github.com/signalcore/otelsdk/sdk/trace"
	sdktrace "github.com/signalcore/otelsdk/trace"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/signalcore/otelsdk/exporters/otlp/otlpcommon"
)

// ExportTraceServiceRequest field number (opentelemetry.proto.collector.trace.v1).
const fieldRequestResourceSpans = 1

// ResourceSpans / ScopeSpans field numbers.
const (
	fieldResourceSpansResource   = 1
	fieldResourceSpansScopeSpans = 2

	fieldScopeSpansScope     = 1
	fieldScopeSpansSpans     = 2
	fieldScopeSpansSchemaURL = 3
)

// Span message field numbers (opentelemetry.proto.trace.v1.Span).
const (
	fieldSpanTraceID            = 1
	fieldSpanSpanID             = 2
	fieldSpanParentSpanID       = 4
	fieldSpanName               = 5
	fieldSpanKind               = 6
	fieldSpanStartTimeUnixNano  = 7
	fieldSpanEndTimeUnixNano    = 8
	fieldSpanAttributes         = 9
	fieldSpanDroppedAttrCount   = 10
	fieldSpanEvents             = 11
	fieldSpanDroppedEventsCount = 12
	fieldSpanLinks              = 13
	fieldSpanDroppedLinksCount  = 14
	fieldSpanStatus             = 15
)

// Span.Event field numbers.
const (
	fieldEventTimeUnixNano = 1
	fieldEventName         = 2
	fieldEventAttributes   = 3
)

// Span.Link field numbers.
const (
	fieldLinkTraceID    = 1
	fieldLinkSpanID     = 2
	fieldLinkAttributes = 4
)

// Status field numbers.
const (
	fieldStatusMessage = 2
	fieldStatusCode    = 3
)

// EncodeRequest builds a complete ExportTraceServiceRequest for spans,
// bucketed by Resource identity then InstrumentationScope.
func EncodeRequest(spans []sdktraceinternal.ReadOnlySpan) []byte {
	groups := otlpcommon.GroupByResourceAndScope(
		spans,
		func(s sdktraceinternal.ReadOnlySpan) *resource.Resource { return s.Resource() },
		func(s sdktraceinternal.ReadOnlySpan) otlpcommon.Scope {
			scope := s.InstrumentationScope()
			return otlpcommon.Scope{Name: scope.Name, Version: scope.Version, SchemaURL: scope.SchemaURL}
		},
	)

	var b []byte
	for _, rg := range groups {
		var rb []byte
		rb = protowire.AppendTag(rb, fieldResourceSpansResource, protowire.BytesType)
		rb = protowire.AppendBytes(rb, otlpcommon.EncodeResource(rg.Resource))

		for _, sg := range rg.Scopes {
			var sb []byte
			sb = protowire.AppendTag(sb, fieldScopeSpansScope, protowire.BytesType)
			sb = protowire.AppendBytes(sb, otlpcommon.EncodeScope(sg.Scope.Name, sg.Scope.Version, nil))
			for _, span := range sg.Records {
				sb = protowire.AppendTag(sb, fieldScopeSpansSpans, protowire.BytesType)
				sb = protowire.AppendBytes(sb, EncodeSpan(span))
			}
			if sg.Scope.SchemaURL != "" {
				sb = protowire.AppendTag(sb, fieldScopeSpansSchemaURL, protowire.BytesType)
				sb = protowire.AppendString(sb, sg.Scope.SchemaURL)
			}
			rb = protowire.AppendTag(rb, fieldResourceSpansScopeSpans, protowire.BytesType)
			rb = protowire.AppendBytes(rb, sb)
		}

		b = protowire.AppendTag(b, fieldRequestResourceSpans, protowire.BytesType)
		b = protowire.AppendBytes(b, rb)
	}
	return b
}

// EncodeSpan encodes a single ReadOnlySpan as an OTLP Span message.
func EncodeSpan(s sdktraceinternal.ReadOnlySpan) []byte {
	sc := s.SpanContext()
	parent := s.Parent()

	var b []byte
	traceID := sc.TraceID()
	b = protowire.AppendTag(b, fieldSpanTraceID, protowire.BytesType)
	b = protowire.AppendBytes(b, traceID[:])

	spanID := sc.SpanID()
	b = protowire.AppendTag(b, fieldSpanSpanID, protowire.BytesType)
	b = protowire.AppendBytes(b, spanID[:])

	if parent.IsValid() {
		parentSpanID := parent.SpanID()
		b = protowire.AppendTag(b, fieldSpanParentSpanID, protowire.BytesType)
		b = protowire.AppendBytes(b, parentSpanID[:])
	}

	if s.Name() != "" {
		b = protowire.AppendTag(b, fieldSpanName, protowire.BytesType)
		b = protowire.AppendString(b, s.Name())
	}

	if kind := spanKindToOTLP(s.Kind()); kind != 0 {
		b = protowire.AppendTag(b, fieldSpanKind, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(kind))
	}

	b = protowire.AppendTag(b, fieldSpanStartTimeUnixNano, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, uint64(s.StartTime().UnixNano()))

	b = protowire.AppendTag(b, fieldSpanEndTimeUnixNano, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, uint64(s.EndTime().UnixNano()))

	b = otlpcommon.EncodeAttributes(b, fieldSpanAttributes, s.Attributes())
	if n := s.DroppedAttributes(); n > 0 {
		b = protowire.AppendTag(b, fieldSpanDroppedAttrCount, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n))
	}

	for _, ev := range s.Events() {
		b = protowire.AppendTag(b, fieldSpanEvents, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeEvent(ev))
	}
	if n := s.DroppedEvents(); n > 0 {
		b = protowire.AppendTag(b, fieldSpanDroppedEventsCount, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n))
	}

	for _, link := range s.Links() {
		b = protowire.AppendTag(b, fieldSpanLinks, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeLink(link))
	}
	if n := s.DroppedLinks(); n > 0 {
		b = protowire.AppendTag(b, fieldSpanDroppedLinksCount, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n))
	}

	b = protowire.AppendTag(b, fieldSpanStatus, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeStatus(s.Status()))

	return b
}

func encodeEvent(ev sdktrace.Event) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldEventTimeUnixNano, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, uint64(ev.Time.UnixNano()))
	if ev.Name != "" {
		b = protowire.AppendTag(b, fieldEventName, protowire.BytesType)
		b = protowire.AppendString(b, ev.Name)
	}
	b = otlpcommon.EncodeAttributes(b, fieldEventAttributes, ev.Attributes)
	return b
}

func encodeLink(link sdktrace.Link) []byte {
	var b []byte
	traceID := link.SpanContext.TraceID()
	spanID := link.SpanContext.SpanID()
	b = protowire.AppendTag(b, fieldLinkTraceID, protowire.BytesType)
	b = protowire.AppendBytes(b, traceID[:])
	b = protowire.AppendTag(b, fieldLinkSpanID, protowire.BytesType)
	b = protowire.AppendBytes(b, spanID[:])
	b = otlpcommon.EncodeAttributes(b, fieldLinkAttributes, link.Attributes)
	return b
}

func encodeStatus(st sdktrace.Status) []byte {
	var b []byte
	if st.Description != "" {
		b = protowire.AppendTag(b, fieldStatusMessage, protowire.BytesType)
		b = protowire.AppendString(b, st.Description)
	}
	// OTLP StatusCode: UNSET=0, OK=1, ERROR=2 (codes.Error/codes.Ok have
	// the opposite ordinals, so the mapping is explicit).
	var code uint64
	switch st.Code {
	case codes.Ok:
		code = 1
	case codes.Error:
		code = 2
	}
	if code != 0 {
		b = protowire.AppendTag(b, fieldStatusCode, protowire.VarintType)
		b = protowire.AppendVarint(b, code)
	}
	return b
}

// spanKindToOTLP maps the SDK's SpanKind enum onto the OTLP SpanKind
// enum (they share ordinal values 0-5 by construction, but the mapping
// is kept explicit rather than relying on that coincidence holding).
func spanKindToOTLP(k sdktrace.SpanKind) int32 {
	switch k {
	case sdktrace.SpanKindInternal:
		return 1
	case sdktrace.SpanKindServer:
		return 2
	case sdktrace.SpanKindClient:
		return 3
	case sdktrace.SpanKindProducer:
		return 4
	case sdktrace.SpanKindConsumer:
		return 5
	default:
		return 0
	}
}
