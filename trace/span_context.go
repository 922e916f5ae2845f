package trace

import "errors"

// SpanContext is the immutable identity carried by every Span (§3). A
// child's TraceID always equals its parent's; attempts to change it on a
// non-root derivation fail with InvalidArgument (enforced by the SDK's
// Tracer.Start, not here — SpanContext itself has no parent pointer).
type SpanContext struct {
	traceID    TraceID
	spanID     SpanID
	traceFlags TraceFlags
	traceState TraceState
	remote     bool
}

// ErrTraceIDMismatch describes an explicit SpanContext whose TraceID does
// not match its parent's (§4.3 step 2). The SDK's Tracer.Start does not
// return it: it reports that case to the error handler as an
// InvalidArgument.
var ErrTraceIDMismatch = errors.New("trace: explicit span context trace id does not match parent")

// NewSpanContext builds a SpanContext from its components.
func NewSpanContext(cfg SpanContextConfig) SpanContext {
	return SpanContext{
		traceID:    cfg.TraceID,
		spanID:     cfg.SpanID,
		traceFlags: cfg.TraceFlags,
		traceState: cfg.TraceState,
		remote:     cfg.Remote,
	}
}

// SpanContextConfig is the argument to NewSpanContext.
type SpanContextConfig struct {
	TraceID    TraceID
	SpanID     SpanID
	TraceFlags TraceFlags
	TraceState TraceState
	Remote     bool
}

func (sc SpanContext) TraceID() TraceID       { return sc.traceID }
func (sc SpanContext) SpanID() SpanID         { return sc.spanID }
func (sc SpanContext) TraceFlags() TraceFlags { return sc.traceFlags }
func (sc SpanContext) TraceState() TraceState { return sc.traceState }
func (sc SpanContext) IsRemote() bool         { return sc.remote }
func (sc SpanContext) IsSampled() bool        { return sc.traceFlags.IsSampled() }

// IsValid reports whether both TraceID and SpanID are valid.
func (sc SpanContext) IsValid() bool {
	return sc.traceID.IsValid() && sc.spanID.IsValid()
}

// WithRemote returns a copy of sc with the remote flag set to remote.
func (sc SpanContext) WithRemote(remote bool) SpanContext {
	sc.remote = remote
	return sc
}

// WithTraceState returns a copy of sc with its TraceState replaced.
func (sc SpanContext) WithTraceState(ts TraceState) SpanContext {
	sc.traceState = ts
	return sc
}

// Equal reports whether sc and other carry the same identity.
func (sc SpanContext) Equal(other SpanContext) bool {
	return sc.traceID == other.traceID && sc.spanID == other.spanID &&
		sc.traceFlags == other.traceFlags && sc.remote == other.remote
}
