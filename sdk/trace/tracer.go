package trace

import (
	"context"
	"time"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/internal/global"
	"github.com/signalcore/otelsdk/otelerror"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// tracer implements sdktrace.Tracer against a shared TracerProvider
// (§4.3).
type tracer struct {
	provider *TracerProvider
	scope    InstrumentationScope
}

var _ sdktrace.Tracer = (*tracer)(nil)

// Start implements the five-step algorithm from §4.3:
//  1. resolve parent (explicit parent span, else active context, else none)
//  2. validate an explicit SpanContext's TraceID against the parent's
//  3. build the child's TraceID/SpanID/parentSpanID
//  4. invoke the Sampler and merge its verdict
//  5. return a recording Span, or a no-op span on Drop
func (t *tracer) Start(ctx context.Context, spanName string, opts ...sdktrace.SpanStartOption) (context.Context, sdktrace.Span) {
	cfg := sdktrace.NewSpanStartConfig(opts...)

	var parent sdktrace.SpanContext
	if !cfg.NewRoot {
		parent = sdktrace.SpanContextFromContext(ctx)
	}

	if cfg.HasExplicitContext && parent.IsValid() {
		if cfg.ExplicitSpanContext.TraceID() != parent.TraceID() {
			global.Handle(otelerror.NewInvalidArgument(
				"trace: explicit span context trace id %s does not match parent trace id %s",
				cfg.ExplicitSpanContext.TraceID(), parent.TraceID()))
			return ctx, sdktrace.NewNoopSpan(sdktrace.SpanContext{})
		}
	}

	var traceID sdktrace.TraceID
	var parentSpanID sdktrace.SpanID
	if parent.IsValid() {
		traceID = parent.TraceID()
		parentSpanID = parent.SpanID()
	} else {
		traceID = t.provider.idGenerator.NewTraceID()
	}
	spanID := t.provider.idGenerator.NewSpanID()

	result := t.provider.sampler.ShouldSample(SamplingParameters{
		ParentContext: parent,
		TraceID:       traceID,
		Name:          spanName,
		Kind:          cfg.Kind,
		Attributes:    cfg.Attributes,
		Links:         cfg.Links,
	})

	flags := parent.TraceFlags().WithSampled(result.Decision == RecordAndSample)
	sc := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		TraceState: result.TraceState,
	})

	if result.Decision == Drop {
		noop := sdktrace.NewNoopSpan(sc)
		return sdktrace.ContextWithSpan(ctx, noop), noop
	}

	startTime := cfg.Timestamp
	if startTime.IsZero() {
		startTime = time.Now()
	}

	attrs := append(append([]attribute.KeyValue(nil), cfg.Attributes...), result.Attributes...)

	span := &recordingSpan{
		name:      spanName,
		sc:        sc,
		parent:    parent,
		kind:      cfg.Kind,
		startTime: startTime,
		status:    sdktrace.Status{},
		links:     append([]sdktrace.Link(nil), cfg.Links...),
		scope:     t.scope,
		res:       t.provider.resource,
		limits:    t.provider.spanLimits,
		onEnd:     t.provider.onSpanEnd,
	}
	span.addAttributesLocked(attrs)

	for _, p := range t.provider.processors {
		p.OnStart(ctx, span)
	}

	return sdktrace.ContextWithSpan(ctx, span), span
}
