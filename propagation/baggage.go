package propagation

import (
	"context"

	sdkbaggage "github.com/signalcore/otelsdk/baggage"
)

const baggageHeader = "baggage"

// Baggage implements the W3C Baggage propagator (§4.9).
type Baggage struct{}

var _ TextMapPropagator = Baggage{}

func (Baggage) Fields() []string { return []string{baggageHeader} }

func (Baggage) Inject(ctx context.Context, carrier TextMapCarrier) {
	b := sdkbaggage.FromContext(ctx)
	if b.Len() == 0 {
		return
	}
	carrier.Set(baggageHeader, b.String())
}

func (Baggage) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	raw := carrier.Get(baggageHeader)
	if raw == "" {
		return ctx
	}
	b, err := sdkbaggage.Parse(raw)
	if err != nil {
		return ctx
	}
	return sdkbaggage.ContextWithBaggage(ctx, b)
}
