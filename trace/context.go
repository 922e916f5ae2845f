package trace

import (
	"context"
	"time"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/codes"
)

// The Context entity (§3) is realized directly as context.Context: an
// immutable, O(1)-derivation value map already provided by the language,
// with scoped lifetime via the caller's own defer — see SPEC_FULL.md §3.1.

type spanKey struct{}

// noopSpan carries a valid SpanContext but records nothing — returned when
// a Sampler decision is Drop, or as the zero value for an empty context
// (§4.3 step 5).
type noopSpan struct{ sc SpanContext }

func (s noopSpan) SpanContext() SpanContext                                 { return s.sc }
func (noopSpan) IsRecording() bool                                          { return false }
func (noopSpan) SetName(string)                                             {}
func (noopSpan) SetAttributes(...attribute.KeyValue)                        {}
func (noopSpan) AddEvent(string, ...attribute.KeyValue)                     {}
func (noopSpan) AddEventWithTimestamp(string, time.Time, ...attribute.KeyValue) {}
func (noopSpan) AddLink(Link)                                               {}
func (noopSpan) SetStatus(codes.Code, string)                               {}
func (noopSpan) RecordException(error, string, bool)                        {}
func (noopSpan) End(...SpanEndOption)                                       {}

// NewNoopSpan returns a Span that performs no recording but carries a valid
// SpanContext for propagation purposes.
func NewNoopSpan(sc SpanContext) Span { return noopSpan{sc: sc} }

// ContextWithSpan returns a copy of parent carrying span as the active
// span.
func ContextWithSpan(parent context.Context, span Span) context.Context {
	return context.WithValue(parent, spanKey{}, span)
}

// ContextWithSpanContext returns a copy of parent carrying sc wrapped in a
// no-op Span, for propagation-only use (e.g. after Extract).
func ContextWithSpanContext(parent context.Context, sc SpanContext) context.Context {
	return ContextWithSpan(parent, NewNoopSpan(sc))
}

// ContextWithRemoteSpanContext is an alias of ContextWithSpanContext that
// additionally marks sc as remote, for propagator Extract implementations.
func ContextWithRemoteSpanContext(parent context.Context, sc SpanContext) context.Context {
	return ContextWithSpanContext(parent, sc.WithRemote(true))
}

// SpanFromContext returns the Span carried by ctx, or a non-recording span
// with an invalid SpanContext if none was attached.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return NewNoopSpan(SpanContext{})
	}
	if s, ok := ctx.Value(spanKey{}).(Span); ok {
		return s
	}
	return NewNoopSpan(SpanContext{})
}

// SpanContextFromContext is a convenience for SpanFromContext(ctx).SpanContext().
func SpanContextFromContext(ctx context.Context) SpanContext {
	return SpanFromContext(ctx).SpanContext()
}
