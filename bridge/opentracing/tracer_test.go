package opentracing

import (
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"
	"github.com/stretchr/testify/assert"

	"github.com/signalcore/otelsdk/codes"
	sdktraceimpl "github.com/signalcore/otelsdk/sdk/trace"
)

func newTestTracer() opentracing.Tracer {
	tp := sdktraceimpl.NewTracerProvider(sdktraceimpl.WithSampler(sdktraceimpl.AlwaysOn()))
	return New(tp.Tracer("bridge-test"), nil)
}

func TestStartSpanProducesValidContext(t *testing.T) {
	ot := newTestTracer()
	span := ot.StartSpan("test.operation")
	defer span.Finish()

	sc, ok := span.Context().(*bridgeSpanContext)
	assert.True(t, ok)
	assert.True(t, sc.sc.IsValid())
}

func TestChildSpanSharesTraceID(t *testing.T) {
	ot := newTestTracer()
	parent := ot.StartSpan("parent")
	defer parent.Finish()

	child := ot.StartSpan("child", opentracing.ChildOf(parent.Context()))
	defer child.Finish()

	parentSC := parent.Context().(*bridgeSpanContext).sc
	childSC := child.Context().(*bridgeSpanContext).sc
	assert.Equal(t, parentSC.TraceID(), childSC.TraceID())
}

func TestInjectExtractTextMapRoundTrip(t *testing.T) {
	ot := newTestTracer()
	span := ot.StartSpan("test.operation")
	defer span.Finish()

	carrier := opentracing.TextMapCarrier{}
	err := ot.Inject(span.Context(), opentracing.TextMap, carrier)
	assert.NoError(t, err)

	extracted, err := ot.Extract(opentracing.TextMap, carrier)
	assert.NoError(t, err)

	want := span.Context().(*bridgeSpanContext).sc
	got := extracted.(*bridgeSpanContext).sc
	assert.Equal(t, want.TraceID(), got.TraceID())
	assert.Equal(t, want.SpanID(), got.SpanID())
}

func TestExtractWithoutCarrierDataReturnsNotFound(t *testing.T) {
	ot := newTestTracer()
	carrier := opentracing.TextMapCarrier{}
	_, err := ot.Extract(opentracing.TextMap, carrier)
	assert.Equal(t, opentracing.ErrSpanContextNotFound, err)
}

func TestInjectRejectsForeignSpanContext(t *testing.T) {
	ot := newTestTracer()
	err := ot.Inject(fakeSpanContext{}, opentracing.TextMap, opentracing.TextMapCarrier{})
	assert.Equal(t, opentracing.ErrInvalidSpanContext, err)
}

func TestInjectRejectsUnsupportedFormat(t *testing.T) {
	ot := newTestTracer()
	span := ot.StartSpan("test.operation")
	defer span.Finish()

	err := ot.Inject(span.Context(), opentracing.Binary, opentracing.TextMapCarrier{})
	assert.Equal(t, opentracing.ErrUnsupportedFormat, err)
}

func TestSetTagErrorMarksSpanStatus(t *testing.T) {
	ot := newTestTracer()
	span := ot.StartSpan("test.operation")
	span.SetTag("error", true)
	span.Finish()

	ro, ok := span.(*bridgeSpan).span.(sdktraceimpl.ReadOnlySpan)
	if assert.True(t, ok) {
		assert.Equal(t, codes.Error, ro.Status().Code)
	}
}

func TestLogKVAndLogFieldsDoNotPanic(t *testing.T) {
	ot := newTestTracer()
	span := ot.StartSpan("test.operation")
	span.LogKV("event", "cache_miss", "key", "user:42")
	span.LogFields(otlog.String("retries", "3"))
	span.Finish()
}

type fakeSpanContext struct{}

func (fakeSpanContext) ForeachBaggageItem(handler func(k, v string) bool) {}
