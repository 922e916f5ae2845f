package resource

import (
	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/internal/otelenv"
)

const serviceNameKey = "service.name"

// FromEnv builds a Resource from OTEL_RESOURCE_ATTRIBUTES and
// OTEL_SERVICE_NAME (§6), honoring the rule that OTEL_SERVICE_NAME
// overrides any service.name found in OTEL_RESOURCE_ATTRIBUTES.
func FromEnv() *Resource {
	attrs, _ := otelenv.Lookup("OTEL_RESOURCE_ATTRIBUTES")
	kvs := make([]attribute.KeyValue, 0)
	for k, v := range otelenv.ParseResourceAttributes(attrs) {
		kvs = append(kvs, attribute.String(k, v))
	}
	if svc, ok := otelenv.Lookup("OTEL_SERVICE_NAME"); ok {
		kvs = append(kvs, attribute.String(serviceNameKey, svc))
	}
	return NewWithAttributes(kvs...)
}

// WithServiceName returns a copy of r with service.name set explicitly.
// Explicit constructor arguments outrank both environment namespaces
// (§6 precedence rule).
func WithServiceName(r *Resource, name string) *Resource {
	if name == "" {
		return r
	}
	return Merge(r, NewWithAttributes(attribute.String(serviceNameKey, name)))
}

// Default returns the SDK's default Resource: environment-derived
// attributes, honoring the §6 precedence rule between OTEL_SERVICE_NAME
// and OTEL_RESOURCE_ATTRIBUTES.
func Default() *Resource { return FromEnv() }
