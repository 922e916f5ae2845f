// Package opentracing bridges the OpenTracing API onto this module's
// Tracer/TracerProvider (SPEC_FULL §4.11, supplemental), mirroring the
// teacher's ddtrace/opentracer package: a thin opentracer wrapping the
// native Tracer, translating span/context/error shapes at the boundary.
package opentracing

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"

	"github.com/signalcore/otelsdk/codes"
	"github.com/signalcore/otelsdk/propagation"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// New wraps tracer (a Tracer from a single scope, e.g. otel.Tracer(name))
// as an opentracing.Tracer.
func New(tracer sdktrace.Tracer, propagator propagation.TextMapPropagator) opentracing.Tracer {
	if propagator == nil {
		propagator = propagation.NewComposite(propagation.TraceContext{}, propagation.Baggage{})
	}
	return &bridgeTracer{tracer: tracer, propagator: propagator}
}

type bridgeTracer struct {
	tracer     sdktrace.Tracer
	propagator propagation.TextMapPropagator
}

// StartSpan implements opentracing.Tracer.
func (t *bridgeTracer) StartSpan(operationName string, opts ...opentracing.StartSpanOption) opentracing.Span {
	var sso opentracing.StartSpanOptions
	for _, o := range opts {
		o.Apply(&sso)
	}

	ctx := context.Background()
	for _, ref := range sso.References {
		if parent, ok := ref.ReferencedContext.(*bridgeSpanContext); ok {
			ctx = sdktrace.ContextWithSpanContext(ctx, parent.sc)
			break
		}
	}

	var startOpts []sdktrace.SpanStartOption
	if !sso.StartTime.IsZero() {
		startOpts = append(startOpts, sdktrace.WithTimestampStart(sso.StartTime))
	}

	_, span := t.tracer.Start(ctx, operationName, startOpts...)
	bridged := &bridgeSpan{span: span, tracer: t}
	for k, v := range sso.Tags {
		bridged.SetTag(k, v)
	}
	return bridged
}

// Inject implements opentracing.Tracer for the TextMap/HTTPHeaders
// builtin formats; Binary is not supported.
func (t *bridgeTracer) Inject(sc opentracing.SpanContext, format interface{}, carrier interface{}) error {
	bsc, ok := sc.(*bridgeSpanContext)
	if !ok {
		return opentracing.ErrInvalidSpanContext
	}
	mapCarrier, err := asTextMapCarrier(format, carrier)
	if err != nil {
		return err
	}
	ctx := sdktrace.ContextWithSpanContext(context.Background(), bsc.sc)
	t.propagator.Inject(ctx, mapCarrier)
	return nil
}

// Extract implements opentracing.Tracer for the TextMap/HTTPHeaders
// builtin formats.
func (t *bridgeTracer) Extract(format interface{}, carrier interface{}) (opentracing.SpanContext, error) {
	mapCarrier, err := asTextMapCarrier(format, carrier)
	if err != nil {
		return nil, err
	}
	ctx := t.propagator.Extract(context.Background(), mapCarrier)
	sc := sdktrace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil, opentracing.ErrSpanContextNotFound
	}
	return &bridgeSpanContext{sc: sc}, nil
}

func asTextMapCarrier(format interface{}, carrier interface{}) (propagation.TextMapCarrier, error) {
	switch format {
	case opentracing.TextMap, opentracing.HTTPHeaders:
	default:
		return nil, opentracing.ErrUnsupportedFormat
	}
	switch c := carrier.(type) {
	case opentracing.TextMapCarrier:
		return textMapAdapter{c}, nil
	case opentracing.HTTPHeadersCarrier:
		return textMapAdapter{opentracing.TextMapCarrier(c)}, nil
	default:
		return nil, opentracing.ErrInvalidCarrier
	}
}

// textMapAdapter bridges opentracing.TextMapCarrier (ForeachKey/Set) onto
// this module's propagation.TextMapCarrier (Get/Set/Keys).
type textMapAdapter struct {
	c opentracing.TextMapCarrier
}

func (a textMapAdapter) Get(key string) string {
	var v string
	a.c.ForeachKey(func(k, val string) error {
		if k == key {
			v = val
		}
		return nil
	})
	return v
}

func (a textMapAdapter) Set(key, value string) { a.c.Set(key, value) }

func (a textMapAdapter) Keys() []string {
	var keys []string
	a.c.ForeachKey(func(k, _ string) error {
		keys = append(keys, k)
		return nil
	})
	return keys
}

// bridgeSpanContext wraps a native SpanContext as an opentracing.SpanContext.
type bridgeSpanContext struct {
	sc sdktrace.SpanContext
}

func (c *bridgeSpanContext) ForeachBaggageItem(handler func(k, v string) bool) {
	// Baggage is carried on context.Context in this module, not on
	// SpanContext itself; the bridge has no baggage to iterate here.
}

// bridgeSpan wraps a native Span as an opentracing.Span.
type bridgeSpan struct {
	span   sdktrace.Span
	tracer *bridgeTracer
}

func (s *bridgeSpan) Finish() { s.span.End() }

func (s *bridgeSpan) FinishWithOptions(opts opentracing.FinishOptions) {
	var endOpts []sdktrace.SpanEndOption
	if !opts.FinishTime.IsZero() {
		endOpts = append(endOpts, sdktrace.WithTimestamp(opts.FinishTime))
	}
	s.span.End(endOpts...)
}

func (s *bridgeSpan) Context() opentracing.SpanContext {
	return &bridgeSpanContext{sc: s.span.SpanContext()}
}

func (s *bridgeSpan) SetOperationName(operationName string) opentracing.Span {
	s.span.SetName(operationName)
	return s
}

func (s *bridgeSpan) SetTag(key string, value interface{}) opentracing.Span {
	if key == otTagError {
		if isErr, ok := value.(bool); ok && isErr {
			s.span.SetStatus(codes.Error, "")
		}
		return s
	}
	s.span.SetAttributes(attributeFromTag(key, value))
	return s
}

func (s *bridgeSpan) LogFields(fields ...otlog.Field) {
	encoder := &fieldEncoder{}
	for _, f := range fields {
		f.Marshal(encoder)
	}
	s.span.AddEvent("log", encoder.attrs...)
}

func (s *bridgeSpan) LogKV(alternatingKeyValues ...interface{}) {
	fields, err := otlog.InterleavedKVToFields(alternatingKeyValues...)
	if err != nil {
		return
	}
	s.LogFields(fields...)
}

func (s *bridgeSpan) SetBaggageItem(restrictedKey, value string) opentracing.Span { return s }

func (s *bridgeSpan) BaggageItem(restrictedKey string) string { return "" }

func (s *bridgeSpan) Tracer() opentracing.Tracer { return s.tracer }

func (s *bridgeSpan) LogEvent(event string) { s.span.AddEvent(event) }

func (s *bridgeSpan) LogEventWithPayload(event string, payload interface{}) {
	s.span.AddEvent(event, attributeFromTag("payload", payload))
}

func (s *bridgeSpan) Log(data opentracing.LogData) {
	s.span.AddEvent(data.Event)
}

const otTagError = "error"
