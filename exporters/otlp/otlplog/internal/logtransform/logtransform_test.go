package logtransform

import (
	"bytes"
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/resource"
	sdklog "github.com/signalcore/otelsdk/sdk/log"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

func TestEncodeRecordIncludesTraceContextWhenPresent(t *testing.T) {
	traceID, _ := sdktrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := sdktrace.SpanIDFromHex("00f067aa0ba902b7")

	r := sdklog.Record{
		Timestamp:      time.Unix(0, 1000),
		SeverityNumber: sdklog.SeverityInfo,
		Body:           attribute.StringValue("hello"),
		TraceID:        traceID,
		SpanID:         spanID,
		Resource:       resource.Empty(),
	}

	out := EncodeRecord(r)
	if len(out) == 0 {
		t.Fatal("EncodeRecord produced empty output")
	}
	if !bytes.Contains(out, traceID[:]) || !bytes.Contains(out, spanID[:]) {
		t.Fatal("EncodeRecord output lacks the record's trace and span ids")
	}
}

func TestEncodeRecordOmitsAbsentTraceContext(t *testing.T) {
	r := sdklog.Record{
		Timestamp:      time.Unix(0, 1000),
		SeverityNumber: sdklog.SeverityError,
		Body:           attribute.StringValue("oops"),
		Resource:       resource.Empty(),
	}
	out := EncodeRecord(r)
	if len(out) == 0 {
		t.Fatal("EncodeRecord produced empty output")
	}
	traceField := append(protowire.AppendTag(nil, fieldLogRecordTraceID, protowire.BytesType), 16)
	spanField := append(protowire.AppendTag(nil, fieldLogRecordSpanID, protowire.BytesType), 8)
	if bytes.Contains(out, traceField) || bytes.Contains(out, spanField) {
		t.Fatal("EncodeRecord wrote trace context fields for a record without one")
	}
}

func TestEncodeRequestGroupsByResource(t *testing.T) {
	res := resource.NewWithAttributes(attribute.String("service.name", "svc"))
	records := []sdklog.Record{
		{Timestamp: time.Unix(0, 1), Resource: res, InstrumentationScope: sdklog.InstrumentationScope{Name: "a"}},
		{Timestamp: time.Unix(0, 2), Resource: res, InstrumentationScope: sdklog.InstrumentationScope{Name: "b"}},
	}
	out := EncodeRequest(records)
	if len(out) == 0 {
		t.Fatal("EncodeRequest produced empty output")
	}
}
