package propagation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkbaggage "github.com/signalcore/otelsdk/baggage"
)

func TestBaggagePropagatorRoundTrip(t *testing.T) {
	m1, err := sdkbaggage.NewMember("userId", "alice")
	require.NoError(t, err)
	m2, err := sdkbaggage.NewMember("region", "us east")
	require.NoError(t, err)
	b, err := sdkbaggage.New(m1, m2)
	require.NoError(t, err)

	ctx := sdkbaggage.ContextWithBaggage(context.Background(), b)
	carrier := MapCarrier{}
	Baggage{}.Inject(ctx, carrier)
	assert.NotEmpty(t, carrier.Get(baggageHeader))

	extracted := Baggage{}.Extract(context.Background(), carrier)
	got := sdkbaggage.FromContext(extracted)
	v, ok := got.Member("region")
	require.True(t, ok)
	assert.Equal(t, "us east", v.Value())
}

func TestCompositePropagatorInjectExtract(t *testing.T) {
	c := NewComposite(TraceContext{}, Baggage{})
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, c.Fields())
}
