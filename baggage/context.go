package baggage

import "context"

type contextKey struct{}

// ContextWithBaggage returns a copy of parent carrying b as the active
// Baggage (§3 Context — O(1) immutable derivation).
func ContextWithBaggage(parent context.Context, b Baggage) context.Context {
	return context.WithValue(parent, contextKey{}, b)
}

// ContextWithoutBaggage returns a copy of parent with no active Baggage.
func ContextWithoutBaggage(parent context.Context) context.Context {
	return context.WithValue(parent, contextKey{}, Baggage{})
}

// FromContext returns the Baggage carried by ctx, or an empty Baggage if
// none was attached.
func FromContext(ctx context.Context) Baggage {
	if b, ok := ctx.Value(contextKey{}).(Baggage); ok {
		return b
	}
	return Baggage{}
}
