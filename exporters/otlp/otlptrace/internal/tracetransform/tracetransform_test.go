package tracetransform

import (
	"bytes"
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/codes"
	"github.com/signalcore/otelsdk/resource"
	sdktraceinternal "github.com/signalcore/otelsdk/sdk/trace"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

type fakeSpan struct {
	name string
	sc   sdktrace.SpanContext
	res  *resource.Resource
	scop sdktraceinternal.InstrumentationScope
	kind sdktrace.SpanKind
	attr []attribute.KeyValue
}

func (f *fakeSpan) Name() string                     { return f.name }
func (f *fakeSpan) SpanContext() sdktrace.SpanContext { return f.sc }
func (f *fakeSpan) Parent() sdktrace.SpanContext      { return sdktrace.SpanContext{} }
func (f *fakeSpan) Kind() sdktrace.SpanKind           { return f.kind }
func (f *fakeSpan) StartTime() time.Time              { return time.Unix(0, 1000) }
func (f *fakeSpan) EndTime() time.Time                { return time.Unix(0, 2000) }
func (f *fakeSpan) Attributes() []attribute.KeyValue  { return f.attr }
func (f *fakeSpan) Links() []sdktrace.Link            { return nil }
func (f *fakeSpan) Events() []sdktrace.Event           { return nil }
func (f *fakeSpan) Status() sdktrace.Status           { return sdktrace.Status{Code: codes.Ok} }
func (f *fakeSpan) InstrumentationScope() sdktraceinternal.InstrumentationScope { return f.scop }
func (f *fakeSpan) Resource() *resource.Resource      { return f.res }
func (f *fakeSpan) DroppedAttributes() int            { return 0 }
func (f *fakeSpan) DroppedEvents() int                { return 0 }
func (f *fakeSpan) DroppedLinks() int                 { return 0 }
func (f *fakeSpan) ChildSpanCount() int               { return 0 }

func newTestSpan(name, scopeName string, res *resource.Resource) *fakeSpan {
	traceID, _ := sdktrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := sdktrace.SpanIDFromHex("00f067aa0ba902b7")
	return &fakeSpan{
		name: name,
		sc:   sdktrace.NewSpanContext(sdktrace.SpanContextConfig{TraceID: traceID, SpanID: spanID}),
		res:  res,
		scop: sdktraceinternal.InstrumentationScope{Name: scopeName, Version: "1.0"},
		kind: sdktrace.SpanKindServer,
		attr: []attribute.KeyValue{attribute.String("http.method", "GET")},
	}
}

func TestEncodeRequestGroupsByResourceThenScope(t *testing.T) {
	res := resource.NewWithAttributes(attribute.String("service.name", "checkout"))
	spans := []sdktraceinternal.ReadOnlySpan{
		newTestSpan("a", "scope-one", res),
		newTestSpan("b", "scope-two", res),
		newTestSpan("c", "scope-one", res),
	}

	out := EncodeRequest(spans)
	if len(out) == 0 {
		t.Fatal("EncodeRequest produced empty output for non-empty input")
	}
}

func TestEncodeSpanIncludesStatusAndTimestamps(t *testing.T) {
	res := resource.Empty()
	span := newTestSpan("op", "scope", res)

	out := EncodeSpan(span)
	if len(out) == 0 {
		t.Fatal("EncodeSpan produced empty output")
	}

	// codes.Ok is OTLP STATUS_CODE_OK (1).
	status := protowire.AppendVarint(protowire.AppendTag(nil, fieldStatusCode, protowire.VarintType), 1)
	wantStatus := protowire.AppendBytes(protowire.AppendTag(nil, fieldSpanStatus, protowire.BytesType), status)
	wantStart := protowire.AppendFixed64(protowire.AppendTag(nil, fieldSpanStartTimeUnixNano, protowire.Fixed64Type), 1000)
	wantEnd := protowire.AppendFixed64(protowire.AppendTag(nil, fieldSpanEndTimeUnixNano, protowire.Fixed64Type), 2000)
	if !bytes.Contains(out, wantStatus) {
		t.Fatalf("EncodeSpan output lacks status %x", wantStatus)
	}
	if !bytes.Contains(out, wantStart) || !bytes.Contains(out, wantEnd) {
		t.Fatal("EncodeSpan output lacks start/end timestamps")
	}
}
