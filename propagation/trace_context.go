package propagation

import (
	"context"
	"strings"

	sdktrace "github.com/signalcore/otelsdk/trace"
)

const (
	traceparentHeader = "traceparent"
	tracestateHeader  = "tracestate"
	w3cVersion        = "00"
)

// TraceContext implements the W3C Trace Context propagator: reads/writes
// `traceparent: 00-<traceId32>-<spanId16>-<flags2>` and optional
// `tracestate` (§4.9). Malformed parents are ignored — Extract returns the
// input context unchanged.
type TraceContext struct{}

var _ TextMapPropagator = TraceContext{}

func (TraceContext) Fields() []string { return []string{traceparentHeader, tracestateHeader} }

func (TraceContext) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := sdktrace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	header := strings.Join([]string{
		w3cVersion,
		sc.TraceID().String(),
		sc.SpanID().String(),
		sc.TraceFlags().String(),
	}, "-")
	carrier.Set(traceparentHeader, header)
	if ts := sc.TraceState().String(); ts != "" {
		carrier.Set(tracestateHeader, ts)
	}
}

func (TraceContext) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	sc, ok := parseTraceparent(carrier.Get(traceparentHeader))
	if !ok {
		return ctx
	}
	if raw := carrier.Get(tracestateHeader); raw != "" {
		if ts, err := sdktrace.ParseTraceState(raw); err == nil {
			sc = sc.WithTraceState(ts)
		}
	}
	return sdktrace.ContextWithRemoteSpanContext(ctx, sc)
}

func parseTraceparent(header string) (sdktrace.SpanContext, bool) {
	if header == "" {
		return sdktrace.SpanContext{}, false
	}
	parts := strings.Split(header, "-")
	if len(parts) < 4 {
		return sdktrace.SpanContext{}, false
	}
	version, traceIDHex, spanIDHex, flagsHex := parts[0], parts[1], parts[2], parts[3]
	if len(version) != 2 {
		return sdktrace.SpanContext{}, false
	}
	// version "ff" is explicitly invalid per the W3C spec.
	if version == "ff" {
		return sdktrace.SpanContext{}, false
	}
	traceID, err := sdktrace.TraceIDFromHex(traceIDHex)
	if err != nil || !traceID.IsValid() {
		return sdktrace.SpanContext{}, false
	}
	spanID, err := sdktrace.SpanIDFromHex(spanIDHex)
	if err != nil || !spanID.IsValid() {
		return sdktrace.SpanContext{}, false
	}
	if len(flagsHex) != 2 {
		return sdktrace.SpanContext{}, false
	}
	flagsByte, ok := decodeHexByte(flagsHex)
	if !ok {
		return sdktrace.SpanContext{}, false
	}
	sc := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: sdktrace.TraceFlags(flagsByte),
		Remote:     true,
	})
	return sc, true
}

func decodeHexByte(s string) (byte, bool) {
	hi, ok := hexNibble(s[0])
	if !ok {
		return 0, false
	}
	lo, ok := hexNibble(s[1])
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexNibble(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}
