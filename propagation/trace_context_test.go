package propagation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdktrace "github.com/signalcore/otelsdk/trace"
)

func TestTraceContextInjectExtractRoundTrip(t *testing.T) {
	traceID, err := sdktrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := sdktrace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: sdktrace.FlagsSampled,
	})
	ctx := sdktrace.ContextWithSpanContext(context.Background(), sc)

	carrier := MapCarrier{}
	TraceContext{}.Inject(ctx, carrier)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", carrier.Get(traceparentHeader))

	extracted := TraceContext{}.Extract(context.Background(), carrier)
	got := sdktrace.SpanContextFromContext(extracted)
	assert.Equal(t, sc.TraceID(), got.TraceID())
	assert.Equal(t, sc.SpanID(), got.SpanID())
	assert.True(t, got.IsSampled())
	assert.True(t, got.IsRemote())
}

func TestTraceContextExtractMalformedReturnsInputUnchanged(t *testing.T) {
	ctx := context.Background()
	carrier := MapCarrier{traceparentHeader: "garbage"}
	out := TraceContext{}.Extract(ctx, carrier)
	assert.Equal(t, ctx, out)
}

func TestTraceContextExtractAllZeroTraceIDInvalid(t *testing.T) {
	ctx := context.Background()
	carrier := MapCarrier{traceparentHeader: "00-00000000000000000000000000000000-00f067aa0ba902b7-01"}
	out := TraceContext{}.Extract(ctx, carrier)
	assert.False(t, sdktrace.SpanContextFromContext(out).IsValid())
}
