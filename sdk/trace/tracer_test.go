package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalcore/otelsdk/codes"
	"github.com/signalcore/otelsdk/resource"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

func newTestProvider(sampler Sampler) *TracerProvider {
	return NewTracerProvider(
		WithSampler(sampler),
		WithResource(resource.Empty()),
	)
}

// Scenario 1 (§8): sampling inheritance under ParentBased(AlwaysOn).
func TestSamplingInheritance(t *testing.T) {
	p := newTestProvider(ParentBased(AlwaysOn()))
	tr := p.Tracer("test")

	ctxA, spanA := tr.Start(context.Background(), "A")
	require.True(t, spanA.SpanContext().IsSampled())

	ctxB, spanB := tr.Start(ctxA, "B")
	assert.Equal(t, spanA.SpanContext().TraceID(), spanB.SpanContext().TraceID())
	assert.Equal(t, spanA.SpanContext().SpanID(), sdktrace.SpanContextFromContext(ctxA).SpanID())
	assert.True(t, spanB.SpanContext().IsSampled())

	remoteNotSampled := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID: spanA.SpanContext().TraceID(),
		SpanID:  spanA.SpanContext().SpanID(),
		Remote:  true,
	})
	ctxC := sdktrace.ContextWithRemoteSpanContext(context.Background(), remoteNotSampled)
	_, spanC := tr.Start(ctxC, "C")
	assert.False(t, spanC.SpanContext().IsSampled())

	_ = ctxB
}

// Scenario 2 (§8): AlwaysOff drops; spans never reach the processor.
func TestSamplingOverrideAlwaysOffNeverReachesProcessor(t *testing.T) {
	p := NewTracerProvider(WithSampler(AlwaysOff()), WithResource(resource.Empty()))
	rec := &recordingProcessor{}
	p.processors = append(p.processors, rec)

	tr := p.Tracer("off")
	_, span := tr.Start(context.Background(), "dropped")
	assert.False(t, span.IsRecording())
	span.End()
	assert.Empty(t, rec.ended)
}

type recordingProcessor struct {
	ended []ReadOnlySpan
}

func (r *recordingProcessor) OnStart(context.Context, ReadOnlySpan) {}
func (r *recordingProcessor) OnEnd(s ReadOnlySpan)                  { r.ended = append(r.ended, s) }
func (r *recordingProcessor) ForceFlush(context.Context) bool       { return true }
func (r *recordingProcessor) Shutdown(context.Context) bool         { return true }

func TestExplicitSpanContextTraceIDMismatchDrops(t *testing.T) {
	p := newTestProvider(AlwaysOn())
	tr := p.Tracer("test")

	_, parentSpan := tr.Start(context.Background(), "parent")
	ctx := sdktrace.ContextWithSpan(context.Background(), parentSpan)

	mismatched := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID: [16]byte{0xff},
		SpanID:  [8]byte{0x01},
	})
	_, child := tr.Start(ctx, "child", sdktrace.WithExplicitSpanContext(mismatched))
	assert.False(t, child.SpanContext().IsValid())
}

func TestRootSpanHasZeroParentSpanID(t *testing.T) {
	p := newTestProvider(AlwaysOn())
	tr := p.Tracer("test")
	_, span := tr.Start(context.Background(), "root")
	rs := span.(*recordingSpan)
	assert.Equal(t, "0000000000000000", rs.Parent().SpanID().String())
}

func TestChildSpanLinksToParent(t *testing.T) {
	p := newTestProvider(AlwaysOn())
	tr := p.Tracer("test")
	ctx, parent := tr.Start(context.Background(), "parent")
	_, child := tr.Start(ctx, "child")

	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	childRec := child.(*recordingSpan)
	assert.Equal(t, parent.SpanContext().SpanID(), childRec.Parent().SpanID())
	assert.NotEqual(t, parent.SpanContext().SpanID(), child.SpanContext().SpanID())
}

func TestEndIsIdempotentAndMutatorsBecomeNoops(t *testing.T) {
	p := newTestProvider(AlwaysOn())
	tr := p.Tracer("test")
	_, span := tr.Start(context.Background(), "s")
	span.SetStatus(codes.Error, "boom")
	span.End()
	assert.False(t, span.IsRecording())

	span.SetStatus(codes.Ok, "")
	span.SetName("renamed")
	rs := span.(*recordingSpan)
	assert.Equal(t, codes.Error, rs.Status().Code, "status must not change after End")
	assert.Equal(t, "s", rs.Name(), "name must not change after End")

	span.End()
}

func TestStatusOkIsFinal(t *testing.T) {
	p := newTestProvider(AlwaysOn())
	tr := p.Tracer("test")
	_, span := tr.Start(context.Background(), "s")
	span.SetStatus(codes.Ok, "")
	span.SetStatus(codes.Error, "too late")
	rs := span.(*recordingSpan)
	assert.Equal(t, codes.Ok, rs.Status().Code)
}
