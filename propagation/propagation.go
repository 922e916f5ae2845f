// Package propagation implements Context extract/inject across the wire
// (§4.9): the W3C TraceContext and Baggage propagators, and a Composite
// that chains several.
package propagation

import "context"

// TextMapCarrier is the minimal capability a propagator needs to read and
// write a string-keyed carrier (HTTP headers, message attributes, ...).
type TextMapCarrier interface {
	Get(key string) string
	Set(key, value string)
	Keys() []string
}

// TextMapPropagator is polymorphic over inject and extract (§4.9).
type TextMapPropagator interface {
	Inject(ctx context.Context, carrier TextMapCarrier)
	Extract(ctx context.Context, carrier TextMapCarrier) context.Context
	Fields() []string
}

// MapCarrier adapts a plain map[string]string to TextMapCarrier.
type MapCarrier map[string]string

func (c MapCarrier) Get(key string) string { return c[key] }
func (c MapCarrier) Set(key, value string) { c[key] = value }
func (c MapCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
